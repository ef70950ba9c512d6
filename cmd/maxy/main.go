package main

import (
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	_ "github.com/lib/pq"

	"github.com/maxybot/maxy/bot"
	"github.com/maxybot/maxy/database"
	"github.com/maxybot/maxy/kvstore"
	"github.com/maxybot/maxy/owo"
)

type Config struct {
	Token            string   `json:"token"`
	ConnectionString string   `json:"connection_string"`
	OwoAPIKey        string   `json:"owo_api_key"`
	StorePath        string   `json:"store_path"`
	DataPath         string   `json:"data_path"`
	OwnerIDs         []string `json:"owner_ids"`
	GlobalCooldowns  bool     `json:"global_cooldowns"`
}

func main() {
	d, err := os.ReadFile("./config.json")
	if err != nil {
		log.Fatalf("failed to read config: %v", err)
	}

	var config *Config
	err = json.Unmarshal(d, &config)
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}

	z, err := zap.NewProduction()
	if err != nil {
		log.Fatal(err)
	}
	defer z.Sync()

	// a connection string means postgres, otherwise fall back to the
	// json file store
	var db database.DB
	if config.ConnectionString != "" {
		db, err = database.NewPSQLDatabase(&database.Config{
			Log:     z.Named("database"),
			ConnStr: config.ConnectionString,
		})
	} else {
		path := config.DataPath
		if path == "" {
			path = "./data.json"
		}
		db, err = database.NewJsonDatabase(path)
	}
	if err != nil {
		z.Fatal("failed to open database", zap.Error(err))
	}
	defer db.Close()

	storePath := config.StorePath
	if storePath == "" {
		storePath = "./store"
	}
	store, err := kvstore.NewStore(storePath, z.Named("store"))
	if err != nil {
		z.Fatal("failed to open store", zap.Error(err))
	}
	defer store.Close()

	var owoCl *owo.Client
	if config.OwoAPIKey != "" {
		owoCl = owo.NewClient(config.OwoAPIKey)
	}

	b, err := bot.NewBot(&bot.Config{
		Store:           store,
		Log:             z.Named("bot"),
		DB:              db,
		Owo:             owoCl,
		Token:           config.Token,
		OwnerIDs:        config.OwnerIDs,
		GlobalCooldowns: config.GlobalCooldowns,
	})
	if err != nil {
		z.Fatal("failed to create bot", zap.Error(err))
	}
	defer b.Close()

	if err := b.Run(); err != nil {
		z.Fatal("failed to run bot", zap.Error(err))
	}

	// block until ctrl-c
	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM)
	<-sc
}
