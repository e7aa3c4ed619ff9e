package main

import (
	"mediaguard/bot"
	"mediaguard/handlers"
)

func main() {
	bot.Run(handlers.Register)
}
