/*
Copyright © 2025 developer4fun
*/
package main

import (
	"log"

	"github.com/joho/godotenv"

	"github.com/developer4fun/Knowledge-Explorer/cmd"
)

func main() {
	cmd.Execute()
}

func init() {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}
}
