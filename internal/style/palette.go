package style

// Palette is the full set of colors used by a run. It is passed explicitly to
// the composer and renderer; there is no package-level table to patch.
type Palette struct {
	IdleFill    Color // objects before the target is picked out
	IdleEdge    Color
	ScanFill    Color // object surface while it is being scanned
	ScanEdge    Color
	PathFront   Color // camera path segments in front of the object
	PathBack    Color // camera path segments behind the object
	CameraBody  Color
	CameraEdge  Color
	ViewCone    Color
	PointCloud  Color
	FinalMesh   Color // primary color
	FinalEdge   Color
	Grid        Color
	Shadow      Color
	TitleText   Color
	DetailText  Color
	HeaderText  Color
	CursorText  Color
	TextOutline Color
}

// DefaultPalette returns the stock blue-grey palette.
func DefaultPalette() Palette {
	return Palette{
		IdleFill:    MustHex("#CFD8DC"),
		IdleEdge:    MustHex("#78909C"),
		ScanFill:    MustHex("#ECEFF1"),
		ScanEdge:    MustHex("#CFD8DC"),
		PathFront:   MustHex("#37474F"),
		PathBack:    MustHex("#B0BEC5"),
		CameraBody:  MustHex("#263238"),
		CameraEdge:  White,
		ViewCone:    MustHex("#00E5FF"),
		PointCloud:  MustHex("#039BE5"),
		FinalMesh:   MustHex("#2962FF"),
		FinalEdge:   White,
		Grid:        MustHex("#E0E0E0"),
		Shadow:      Black,
		TitleText:   MustHex("#1C2B33"),
		DetailText:  MustHex("#546E7A"),
		HeaderText:  MustHex("#78909C"),
		CursorText:  MustHex("#2979FF"),
		TextOutline: White,
	}
}

// WithPrimary returns a copy of the palette using primary for the finished
// mesh.
func (p Palette) WithPrimary(primary Color) Palette {
	p.FinalMesh = primary
	return p
}
