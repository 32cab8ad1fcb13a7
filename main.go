package main

import "marketplace-api/app"

func main() {
	app.Run()
}
