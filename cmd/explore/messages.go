package main

// RegeneratedMsg reports the end of a price series regeneration.
type RegeneratedMsg struct {
	Err error
}
