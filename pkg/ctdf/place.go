package ctdf

type ResolvedPlace struct {
	Location Location `json:"location"`
	Label    string   `json:"label"`
}
