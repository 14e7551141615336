// objmesh is a CLI utility for inspecting Wavefront OBJ files as half-edge
// meshes.
package main

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/objmesh/internal/config"
	"github.com/Faultbox/objmesh/internal/logger"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}

	args := config.Args()
	if len(args) < 1 {
		printUsage(os.Stderr)
		logger.Sync()
		os.Exit(1)
	}

	logger.Sugar.Debugf("Config: %+v", cfg)

	code := run(cfg, args, os.Stdout)
	logger.Sync()
	os.Exit(code)
}

// run dispatches a command and returns the process exit code.
func run(cfg *config.Config, args []string, w io.Writer) int {
	command := args[0]
	args = args[1:]

	var err error
	switch command {
	case "info":
		err = cmdInfo(cfg, args, w)
	case "edges", "he":
		err = cmdEdges(cfg, args, w)
	case "normals", "vn":
		err = cmdNormals(cfg, args, w)
	case "validate", "check":
		err = cmdValidate(cfg, args, w)
	case "watch":
		err = cmdWatch(cfg, args, w)
	case "help", "-h", "--help":
		printUsage(w)
		return 0
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage(os.Stderr)
		return 1
	}

	if err != nil {
		logger.Debug("command failed", zap.String("command", command), zap.Error(err))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `objmesh - Wavefront OBJ half-edge mesh inspector

Usage:
  objmesh [flags] <command> [options] <file.obj>

Commands:
  info <file.obj>            Show counts, bounds and edge summary
  edges [-n N] <file.obj>    List half-edges with their links
  normals [-unit] <file.obj> List vertex positions and normals
  validate <file.obj>        Check mesh invariants (non-zero exit on failure)
  watch <file.obj>           Re-parse whenever the file changes

Flags:
  -config <path>             Config file (.yaml or .toml)
  -normalize <mode>          full, rotate-only or none
  -bounds-seed <seed>        origin or first-vertex
  -face-geometry <mode>      first-three or polygon
  -debug                     Enable debug logging
  -log-file <path>           Also write JSON logs to a rotated file

Examples:
  objmesh info model.obj
  objmesh -normalize none edges -n 20 model.obj
  objmesh -debug watch model.obj`)
}
