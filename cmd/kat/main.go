// Command kat prints the files selected by a named profile.
package main

func main() {
	Execute()
}
