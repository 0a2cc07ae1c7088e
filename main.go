/*
main.go

credgen generates passwords and checks strings for markup lead-ins.
*/
package main

import (
	"os"

	"github.com/CodeMonkeyCybersecurity/credgen/cmd"
	"github.com/CodeMonkeyCybersecurity/credgen/pkg/logger"
)

func main() {
	logger.InitializeWithFallback()
	os.Exit(cmd.Execute())
}
