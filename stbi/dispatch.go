package stbi

// route selects the decode entry point family.
type route int

const (
	route8Bit route = iota
	routeFloat
)

func (r route) String() string {
	if r == routeFloat {
		return "float"
	}
	return "8bit"
}

// chooseRoute decides between the 8-bit and float decoders before anything is decoded. The
// probe only runs when the caller has not asked for HDR sources to be converted to 8-bit.
func chooseRoute(convertHDR bool, probe func() bool) route {
	if !convertHDR && probe() {
		return routeFloat
	}
	return route8Bit
}
