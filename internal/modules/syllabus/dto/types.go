package dto

type LoadInput struct {
	Path string
}

type RowOutput struct {
	Line       int
	Discipline string
	Topic      string
	Hours      float64
}

type LoadOutput struct {
	Path       string
	Format     string
	Rows       []RowOutput
	TotalHours float64
}
