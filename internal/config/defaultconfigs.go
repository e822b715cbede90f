package config

var DefaultConfig = Config{
	Players: PlayersConfig{
		Black: "human",
		White: "human",
	},
	Server: ServerConfig{
		Port:      8002,
		StaticDir: "static",
	},
}
