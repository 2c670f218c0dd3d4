// Package opencv decodes through OpenCV imgcodecs via gocv and registers it as the "opencv"
// backend. It reproduces the stb_image output contract: samples in RGB order, forced channel
// conversion, gamma 2.2 between 8-bit and float samples. It is compiled only with the gocv
// build tag.
//
//	go build -tags gocv ./...
package opencv
