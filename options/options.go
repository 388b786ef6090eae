package options

// ViewerOptions carries every runtime setting the viewer understands.
// Flag-bound fields are pointers so flag.Int/flag.String results can be
// stored directly.
type ViewerOptions struct {
	ModelPath  string
	Width      *int
	Height     *int
	Scale      *float64
	Info       *bool
	Screenshot *string
	Record     *bool
	Duration   *float64
	FPS        *int
	OutputFile *string
	FFMPEGPath *string
	Fixture    *string
	Formats    *bool
	Help       *bool
}
