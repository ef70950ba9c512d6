package owo

type Result struct {
	Success     bool   `json:"success"`
	Description string `json:"description"`
	Files       []struct {
		Hash string `json:"hash"`
		Name string `json:"name"`
		URL  string `json:"url"`
		Size int    `json:"size"`
	} `json:"files"`
}
