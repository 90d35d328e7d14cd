package common

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/contributory/ai-gateway/common/config"
	"github.com/contributory/ai-gateway/common/logger"
)

var (
	Port         = flag.Int("port", 3000, "the listening port")
	PrintVersion = flag.Bool("version", false, "print version and exit")
	PrintHelp    = flag.Bool("help", false, "print help and exit")
	LogDir       = flag.String("log-dir", "", "specify the log directory")
	ConfigFile   = flag.String("config", "", "path to a YAML config file")
)

func printHelp() {
	fmt.Println(config.SystemName + " " + Version + " - OpenAI compatible gateway for AI Horde and Bytez.")
	fmt.Println("Usage: ai-gateway [--port <port>] [--log-dir <log directory>] [--config <file>] [--version] [--help]")
}

// Init parses the command line and prepares the log directory and the
// optional config file. Precedence is flag > environment > file > default.
func Init() {
	flag.Parse()

	if *PrintVersion {
		fmt.Println(Version)
		os.Exit(0)
	}
	if *PrintHelp {
		printHelp()
		os.Exit(0)
	}

	configFile := *ConfigFile
	if configFile == "" {
		configFile = os.Getenv("CONFIG_FILE")
	}
	if configFile != "" {
		if err := config.LoadFile(configFile); err != nil {
			log.Fatal(err)
		}
	}

	logDir := *LogDir
	if logDir == "" {
		logDir = os.Getenv("LOG_DIR")
	}
	if logDir != "" {
		var err error
		logDir, err = filepath.Abs(logDir)
		if err != nil {
			log.Fatal(err)
		}
		if _, err := os.Stat(logDir); os.IsNotExist(err) {
			err = os.Mkdir(logDir, 0777)
			if err != nil {
				log.Fatal(err)
			}
		}
		logger.LogDir = logDir
	}
}
