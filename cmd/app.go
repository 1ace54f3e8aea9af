package main

// Entry point of the application.
func main() {
	Execute()
}
