package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"commerce-api/internal/config"
	"commerce-api/internal/service"
)

// Version is set during build via ldflags
var Version = "dev"

func main() {
	install := flag.Bool("install", false, "Install Windows service")
	uninstall := flag.Bool("uninstall", false, "Uninstall Windows service")
	start := flag.Bool("start", false, "Start the service")
	stop := flag.Bool("stop", false, "Stop the service")
	debug := flag.Bool("debug", false, "Run in debug/console mode")
	version := flag.Bool("version", false, "Show version information")
	configPath := flag.String("config", "", "Config file, defaults to config.yaml next to the executable")
	checkConfig := flag.Bool("check-config", false, "Load the config, print the effective storage settings and exit")
	flag.Parse()

	if *version {
		fmt.Printf("Commerce API Service\n")
		fmt.Printf("Version: %s\n", Version)
		os.Exit(0)
	}

	// Resolve before changing directory so relative paths keep working
	if *configPath != "" {
		abs, err := filepath.Abs(*configPath)
		if err != nil {
			log.Fatalf("Invalid config path: %v", err)
		}
		*configPath = abs
		os.Setenv(config.FileEnv, abs)
	}

	exePath, err := os.Executable()
	if err != nil {
		log.Fatal(err)
	}

	if err := os.Chdir(filepath.Dir(exePath)); err != nil {
		log.Printf("Warning: could not change to executable directory: %v", err)
	}

	switch {
	case *checkConfig:
		if err := printConfig(); err != nil {
			log.Fatalf("Invalid config: %v", err)
		}

	case *install:
		var args []string
		if *configPath != "" {
			args = append(args, "-config", *configPath)
		}
		if err := service.InstallService(exePath, args...); err != nil {
			log.Fatalf("Failed to install service: %v", err)
		}
		fmt.Println("Service installed successfully")

		if err := service.StartService(); err != nil {
			log.Printf("Warning: Failed to start service: %v", err)
			fmt.Println("You may need to start the service manually")
		} else {
			fmt.Println("Service started")
		}

	case *uninstall:
		_ = service.StopService()

		if err := service.UninstallService(); err != nil {
			log.Fatalf("Failed to uninstall service: %v", err)
		}
		fmt.Println("Service uninstalled successfully")

	case *start:
		if err := service.StartService(); err != nil {
			log.Fatalf("Failed to start service: %v", err)
		}
		fmt.Println("Service started")

	case *stop:
		if err := service.StopService(); err != nil {
			log.Fatalf("Failed to stop service: %v", err)
		}
		fmt.Println("Service stopped")

	default:
		isService, err := service.IsWindowsService()
		if err != nil {
			log.Printf("Warning: could not determine if running as service: %v", err)
		}

		app := service.NewApplication()

		switch {
		case isService:
			service.RunService(false, app)
		case *debug:
			service.RunService(true, app)
		default:
			fmt.Println("Commerce API Service")
			fmt.Printf("Version: %s\n", Version)
			fmt.Println("Running in console mode. Press Ctrl+C to stop.")
			fmt.Println()
			flag.PrintDefaults()
			fmt.Println()

			app.Run()
		}
	}
}

func printConfig() error {
	cfg, err := config.NewConfig()
	if err != nil {
		return err
	}

	fmt.Printf("Listen port:    %d\n", cfg.App.Port)
	if cfg.Database.IsSQLite() {
		fmt.Printf("Database:       sqlite %s\n", cfg.Database.Path)
	} else {
		fmt.Printf("Database:       postgres %s:%d/%s\n", cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)
	}
	if cfg.Redis.Enabled {
		fmt.Printf("Cart fees:      redis %s:%d, ttl %s\n", cfg.Redis.Host, cfg.Redis.Port, cfg.Fees.SessionTTL)
	} else {
		fmt.Printf("Cart fees:      memory, ttl %s\n", cfg.Fees.SessionTTL)
	}
	fmt.Printf("API logs:       %t\n", cfg.APILogs.Enabled)
	return nil
}
