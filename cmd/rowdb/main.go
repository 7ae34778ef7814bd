package main

import (
	"flag"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/rowdb/rowdb/internal/conn"
	"github.com/rowdb/rowdb/internal/db"
	"github.com/rowdb/rowdb/pkg"
)

// Config mirrors the flags. Fields are pointers so a file can stay
// silent on a setting; explicit command-line flags always win.
type Config struct {
	DB              *string `yaml:"db"`
	InMem           *bool   `yaml:"in_mem"`
	Port            *int    `yaml:"port"`
	Log             *bool   `yaml:"log"`
	Debug           *bool   `yaml:"debug"`
	WriteIntervalMS *int    `yaml:"write_interval_ms"`
}

func main() {
	cwd, _ := os.Getwd()

	config_path := flag.String("config", "", "path to a yaml config file")
	db_write_path := flag.String("db", cwd+"/db.rowdb", "path to save db data")
	in_mem := flag.Bool("m", false, "don't persist db")
	port := flag.Int("port", 3000, "listening port")
	should_log := flag.Bool("log", true, "enable logging")
	debug := flag.Bool("debug", false, "enable debug logs")
	write_interval := flag.Int("write-interval", 1000, "background write interval in ms")

	flag.Parse()

	if *config_path != "" {
		config, err := loadConfig(*config_path)
		if err != nil {
			pkg.FatalLog(err)
		}

		set := map[string]bool{}
		flag.Visit(func(f *flag.Flag) { set[f.Name] = true })

		applyString(config.DB, db_write_path, set["db"])
		applyBool(config.InMem, in_mem, set["m"])
		applyInt(config.Port, port, set["port"])
		applyBool(config.Log, should_log, set["log"])
		applyBool(config.Debug, debug, set["debug"])
		applyInt(config.WriteIntervalMS, write_interval, set["write-interval"])
	}

	if *should_log {
		if *debug {
			pkg.SetLogLevel(pkg.LogLevelDebug)
		} else {
			pkg.SetLogLevel(pkg.LogLevelErrOnly)
		}
	} else {
		pkg.SetLogLevel(pkg.LogLevelNone)
	}

	store := db.NewStore(db.NewWriteSettings(*db_write_path, *in_mem, *write_interval))
	conn.Listen(store, *port)
}

func loadConfig(path string) (*Config, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	config := &Config{}
	if err := yaml.Unmarshal(buf, config); err != nil {
		return nil, err
	}
	return config, nil
}

func applyString(from *string, to *string, flag_set bool) {
	if from != nil && !flag_set {
		*to = *from
	}
}

func applyBool(from *bool, to *bool, flag_set bool) {
	if from != nil && !flag_set {
		*to = *from
	}
}

func applyInt(from *int, to *int, flag_set bool) {
	if from != nil && !flag_set {
		*to = *from
	}
}
