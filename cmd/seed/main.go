// Seed program: creates a data directory with sample tables and rows.
// Run: go run ./cmd/seed
// Then inspect: data/*.tbl with go run ./cmd/inspect_table data/students.tbl
package main

import (
	"flag"
	"fmt"
	"log"

	"juicydb/query_parser/parser"
	storage "juicydb/storage_manager"
)

func main() {
	dataDir := flag.String("data", "data", "directory holding the table files")
	flag.Parse()

	manager, err := storage.NewManager(*dataDir)
	if err != nil {
		log.Fatalf("open data directory: %v", err)
	}
	defer manager.Close()

	run := func(sql string) {
		stmt, err := parser.Parse(sql)
		if err != nil {
			log.Fatalf("parse %q: %v", sql, err)
		}
		if _, err := manager.Execute(stmt); err != nil {
			log.Fatalf("execute %q: %v", sql, err)
		}
	}

	fmt.Println("Creating sample tables...")

	// Table 1: students (id key, name, age)
	run(`CREATE TABLE students ( id integer, name text, age integer )`)
	run(`INSERT INTO students VALUES (1, "Alice", 20)`)
	run(`INSERT INTO students VALUES (2, "Bob", 21)`)
	run(`INSERT INTO students VALUES (3, "Carol", 19)`)

	// Table 2: courses (code key, title)
	run(`CREATE TABLE courses ( code integer, title text )`)
	run(`INSERT INTO courses VALUES (101, "Intro to CS")`)
	run(`INSERT INTO courses VALUES (102, "Data Structures")`)

	// Table 3: grades, enough rows to force leaf splits
	run(`CREATE TABLE grades ( id integer, course_code integer, grade text )`)
	for i := 1; i <= 200; i++ {
		run(fmt.Sprintf(`INSERT INTO grades VALUES (%d, %d, "A")`, i, 100+i%3))
	}

	fmt.Println("\nDone. Inspect:")
	fmt.Printf("  - Table files:    %s/*.tbl\n", *dataDir)
	fmt.Printf("  - Node structure: go run ./cmd/inspect_table %s/grades.tbl\n", *dataDir)
}
