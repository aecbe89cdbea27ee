package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"juicydb/query_parser/parser"
	storage "juicydb/storage_manager"
)

func main() {
	dataDir := flag.String("data", "data", "directory holding the table files")
	logFile := flag.String("log", "juicydb.log", "engine log file")
	flag.Parse()

	logger := newLogger(*logFile)
	defer logger.Sync()

	manager, err := storage.NewManager(*dataDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer manager.Close()
	manager.SetLogger(logger)

	scanner := bufio.NewScanner(os.Stdin)
	// REPL
	for {
		fmt.Print("db> ")

		if !scanner.Scan() { // Ctrl+D pressed
			break
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, ".") {
			if runMetaCommand(manager, line) {
				break
			}
			continue
		}

		stmt, err := parser.Parse(line)
		if err != nil {
			fmt.Printf("Parse error: %v\n", err)
			continue
		}

		res, err := manager.Execute(stmt)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			continue
		}
		printResult(res)
	}
}

// runMetaCommand handles dot commands. Returns true when the REPL should
// exit.
func runMetaCommand(manager *storage.Manager, line string) bool {
	switch line {
	case ".exit":
		return true
	case ".tables":
		for _, name := range manager.Tables() {
			fmt.Println(name)
		}
	default:
		fmt.Printf("Unknown command: %s\n", line)
	}
	return false
}

func printResult(res *storage.Result) {
	if len(res.Columns) > 0 {
		fmt.Println(strings.Join(res.Columns, " | "))
		for _, row := range res.Rows {
			parts := make([]string, 0, len(row))
			for _, v := range row {
				parts = append(parts, v.String())
			}
			fmt.Println(strings.Join(parts, " | "))
		}
		fmt.Printf("(%d rows)\n", len(res.Rows))
		return
	}
	fmt.Printf("OK (%d rows affected)\n", res.RowsAffected)
}

// newLogger builds a JSON logger writing to a size-rotated file, keeping
// the terminal free for query output.
func newLogger(path string) *zap.Logger {
	sink := zapcore.AddSync(&lumberjack.Logger{
		Filename:   path,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
	})
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
		sink,
		zap.InfoLevel,
	)
	return zap.New(core)
}
