package main

import "github.com/NikhilTalatule/MarketStream-ETL/cmd"

func main() {
	cmd.Execute()
}
