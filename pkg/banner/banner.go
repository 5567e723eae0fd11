package banner

import (
	"fmt"

	"github.com/ihildebrandt/fuelgo/pkg/config"
)

const banner = `
███████╗██╗   ██╗███████╗██╗      ██████╗  ██████╗
██╔════╝██║   ██║██╔════╝██║     ██╔════╝ ██╔═══██╗
█████╗  ██║   ██║█████╗  ██║     ██║  ███╗██║   ██║
██╔══╝  ██║   ██║██╔══╝  ██║     ██║   ██║██║   ██║
██║     ╚██████╔╝███████╗███████╗╚██████╔╝╚██████╔╝
╚═╝      ╚═════╝ ╚══════╝╚══════╝ ╚═════╝  ╚═════╝
`

// Print writes the startup banner with the effective config summary.
func Print(cfg config.Config, source, version string) {
	fmt.Print(banner)
	fmt.Println("== Config =====================================================")
	fmt.Printf("Listen:    %s\n", cfg.Addr())
	fmt.Printf("Log level: %s\n", cfg.Logging.Level)
	if cfg.Sessions.Path != "" {
		fmt.Printf("Sessions:  %s (ttl %s)\n", cfg.Sessions.Path, cfg.SessionTTL())
	}
	if version != "" {
		fmt.Printf("Version:   %s\n", version)
	}
	fmt.Printf("Config source: %s\n", source)
	fmt.Println()
}
