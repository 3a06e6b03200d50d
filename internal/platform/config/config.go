package config

import (
	"os"

	"github.com/magiconair/properties"
)

// Server captures process-level configuration.
type Server struct {
	Addr        string
	DatabaseURI string
}

const defaultConfigFile = "config.properties"

// FromEnv builds a Server config so main stays lean. The database connection
// string resolves from the environment first, then from the database.uri key
// of a properties file. An empty URI selects the in-memory store.
func FromEnv() Server {
	addr := os.Getenv("PHONE_API_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	uri := os.Getenv("DATABASE_URI")
	if uri == "" {
		uri = uriFromPropertiesFile()
	}

	return Server{
		Addr:        addr,
		DatabaseURI: uri,
	}
}

func uriFromPropertiesFile() string {
	path := os.Getenv("PHONE_API_CONFIG")
	if path == "" {
		path = defaultConfigFile
	}
	props, err := properties.LoadFile(path, properties.UTF8)
	if err != nil {
		// No config file is a valid setup; the service runs on the memory store.
		return ""
	}
	return props.GetString("database.uri", "")
}
