package main

import (
	"log"
	"net/http"
	"os"

	"github.com/rahmatd/go-storefront/app/cmd"
	"github.com/rahmatd/go-storefront/app/configs"
	"github.com/rahmatd/go-storefront/app/routes"
)

func main() {
	if len(os.Args) > 1 {
		cmd.RunCli()
		return
	}

	env := configs.LoadEnv()

	db, err := configs.OpenConnection(env)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}
	log.Println("✅ Database connected.")

	sessionKeys, err := configs.LoadSessionKeys(env)
	if err != nil {
		log.Fatal("Session keys invalid:", err)
	}
	log.Println("✅ Session store initialized.")

	router := routes.NewRouter(db, env, sessionKeys)

	server := http.Server{
		Addr:    env.Port,
		Handler: router,
	}

	log.Printf("🚀 Server starting on %s", server.Addr)
	if err := server.ListenAndServe(); err != nil {
		log.Fatal("Server stopped:", err)
	}
}
