package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"runtime/debug"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/cricklet/reversigo/internal/config"
	. "github.com/cricklet/reversigo/internal/helpers"
	"github.com/cricklet/reversigo/internal/server"
	"github.com/cricklet/reversigo/internal/session"
)

func newZap(cfg *config.Config) (*zap.Logger, error) {
	if cfg.Log.Development {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func main() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintln(os.Stderr, fmt.Sprint(r))
			fmt.Fprintln(os.Stderr, string(debug.Stack()))
		}
	}()

	cfg, err := config.InitConfig()
	if !IsNil(err) {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	port := flag.Int("port", cfg.Server.Port, "port to serve on")
	staticDir := flag.String("static", cfg.Server.StaticDir, "directory with index.html")
	flag.Parse()

	z, zapErr := newZap(cfg)
	if zapErr != nil {
		fmt.Fprintln(os.Stderr, zapErr)
		os.Exit(1)
	}
	logger := NewZapLogger(z)
	defer logger.Sync()

	kinds := cfg.PlayerKinds()
	ws := server.NewHandler(
		server.WithLogger(logger),
		server.WithPlayerKinds(kinds[0], kinds[1]),
		server.WithSessionLogger(func(id string) Logger {
			if cfg.Log.Quiet {
				return &SilentLogger
			}
			return logger.With(zap.String("session", id))
		}),
	)

	static := *staticDir
	if !filepath.IsAbs(static) {
		static = filepath.Join(RootDir(), static)
	}

	var index = func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, filepath.Join(static, "index.html"))
	}

	router := mux.NewRouter()
	router.Handle("/ws", ws)
	router.PathPrefix("/static").Handler(
		http.StripPrefix("/static", http.FileServer(http.Dir(static))))
	router.HandleFunc("/{black}/{white}", func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		for _, v := range []string{vars["black"], vars["white"]} {
			if _, err := session.PlayerKindFromString(v); !IsNil(err) {
				http.NotFound(w, r)
				return
			}
		}
		index(w, r)
	})
	router.HandleFunc("/", index)

	logger.Println("serving at", *port)
	err = Wrap(http.ListenAndServe(fmt.Sprintf(":%v", *port), router))
	if !IsNil(err) {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
