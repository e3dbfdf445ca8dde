package dto

type ToggleInput struct {
	Record map[string]bool
	ID     string
}

type ToggleOutput struct {
	Record map[string]bool
	ID     string
	Done   bool
}

type StatusInput struct {
	IDs    []string
	Record map[string]bool
}

type StatusOutput struct {
	Done     int
	Total    int
	Percent  float64
	Orphaned []string
}
