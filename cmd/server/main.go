package main

import "vzdrzevanje/internal/app"

func main() {
	app.Run()
}
