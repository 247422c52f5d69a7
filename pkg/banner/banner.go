package banner

import "fmt"

const banner = `
███████╗███████╗██████╗ ██╗███████╗██╗   ██╗███╗   ██╗ ██████╗
██╔════╝██╔════╝██╔══██╗██║██╔════╝╚██╗ ██╔╝████╗  ██║██╔════╝
█████╗  █████╗  ██║  ██║██║███████╗ ╚████╔╝ ██╔██╗ ██║██║
██╔══╝  ██╔══╝  ██║  ██║██║╚════██║  ╚██╔╝  ██║╚██╗██║██║
██║     ███████╗██████╔╝██║███████║   ██║   ██║ ╚████║╚██████╗
╚═╝     ╚══════╝╚═════╝ ╚═╝╚══════╝   ╚═╝   ╚═╝  ╚═══╝ ╚═════╝
`

// Print writes the startup banner and effective runtime info.
func Print(addr, dbPath, sources, version string) {
	fmt.Print(banner)
	fmt.Println("== Config =====================================================")
	fmt.Printf("Status:   %s\n", addr)
	fmt.Printf("DB Path:  %s\n", dbPath)
	if version != "" {
		fmt.Printf("Version:  %s\n", version)
	}
	if sources != "" {
		fmt.Printf("Config sources: %s\n", sources)
	}
	fmt.Println("\n== Endpoints ==================================================")
	fmt.Println("GET /healthz  - liveness probe")
	fmt.Println("GET /readyz   - readiness probe (store open)")
	fmt.Println("GET /statusz  - cache population counts")
	fmt.Println("GET /metrics  - Prometheus metrics")
	fmt.Println("\n== Logs: =================================================")
}
