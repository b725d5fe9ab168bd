package main

import (
	"github.com/spf13/viper"

	"vidshare/auth"
)

type Config struct {
	MongoURI   string
	MongoDB    string
	Port       string
	BcryptCost int
}

// loadConfig reads settings from the environment with sensible defaults for
// local development.
func loadConfig() Config {
	v := viper.New()
	v.SetDefault("MONGO_URI", "mongodb://127.0.0.1:27017")
	v.SetDefault("MONGO_DB", "video-project")
	v.SetDefault("PORT", "5000")
	v.SetDefault("BCRYPT_COST", auth.DefaultCost)
	v.AutomaticEnv()

	return Config{
		MongoURI:   v.GetString("MONGO_URI"),
		MongoDB:    v.GetString("MONGO_DB"),
		Port:       v.GetString("PORT"),
		BcryptCost: v.GetInt("BCRYPT_COST"),
	}
}
