//go:build gocv

package opencv

import (
	"math"
	"sync"
	"unsafe"

	"go.uber.org/zap"
	"gocv.io/x/gocv"

	"github.com/nvr-ai/go-stbi/native"
)

const (
	gamma    = 2.2
	invGamma = 1 / 2.2
)

func init() {
	native.Register(native.BackendOpenCV, func(native.Config) (native.Decoder, error) {
		return New(zap.NewNop()), nil
	})
}

// Decoder decodes with OpenCV. Every returned buffer is the data of a Mat that stays open
// until Free closes it.
type Decoder struct {
	logger *zap.Logger

	mu   sync.Mutex
	mats map[unsafe.Pointer]gocv.Mat
}

// New creates a Decoder.
func New(logger *zap.Logger) *Decoder {
	return &Decoder{
		logger: logger,
		mats:   make(map[unsafe.Pointer]gocv.Mat),
	}
}

// Backend implements native.Decoder.
func (d *Decoder) Backend() native.Backend {
	return native.BackendOpenCV
}

// IsHDR implements native.Decoder.
func (d *Decoder) IsHDR(path native.CString) bool {
	return native.IsRadianceFile(path.String())
}

// IsHDRFromMemory implements native.Decoder.
func (d *Decoder) IsHDRFromMemory(data []byte) bool {
	return native.IsRadianceHeader(data)
}

// Load implements native.Decoder.
func (d *Decoder) Load(path native.CString, reqComp int) (native.Buffer, native.Info) {
	src := gocv.IMRead(path.String(), gocv.IMReadUnchanged)
	return d.decode(native.EntryLoad, src, reqComp, false)
}

// LoadFromMemory implements native.Decoder.
func (d *Decoder) LoadFromMemory(data []byte, reqComp int) (native.Buffer, native.Info) {
	return d.decode(native.EntryLoadFromMemory, d.imdecode(data), reqComp, false)
}

// LoadF implements native.Decoder.
func (d *Decoder) LoadF(path native.CString, reqComp int) (native.Buffer, native.Info) {
	src := gocv.IMRead(path.String(), gocv.IMReadUnchanged)
	return d.decode(native.EntryLoadF, src, reqComp, true)
}

// LoadFFromMemory implements native.Decoder.
func (d *Decoder) LoadFFromMemory(data []byte, reqComp int) (native.Buffer, native.Info) {
	return d.decode(native.EntryLoadFFromMemory, d.imdecode(data), reqComp, true)
}

// Free implements native.Decoder. It panics on a buffer this decoder did not return.
func (d *Decoder) Free(buf native.Buffer) {
	if buf.IsNull() {
		return
	}

	d.mu.Lock()
	mat, ok := d.mats[buf.Pointer()]
	delete(d.mats, buf.Pointer())
	d.mu.Unlock()

	if !ok {
		panic("opencv: Free of a buffer this decoder does not own")
	}
	_ = mat.Close()
}

func (d *Decoder) imdecode(data []byte) gocv.Mat {
	if len(data) == 0 {
		return gocv.NewMat()
	}
	mat, err := gocv.IMDecode(data, gocv.IMReadUnchanged)
	if err != nil {
		d.logger.Debug("imdecode failed", zap.Error(err))
		return gocv.NewMat()
	}
	return mat
}

// decode converts src into the requested layout and adopts the result. src is always closed.
func (d *Decoder) decode(entry string, src gocv.Mat, reqComp int, float bool) (native.Buffer, native.Info) {
	defer src.Close()

	if src.Empty() || reqComp < 0 || reqComp > native.MaxChannels {
		d.logger.Debug("decode failed", zap.String("entry", entry), zap.Bool("empty", src.Empty()))
		return native.Buffer{}, native.Info{}
	}

	natural := src.Channels()
	if natural == 2 || natural > native.MaxChannels {
		d.logger.Debug("unsupported channel layout", zap.String("entry", entry), zap.Int("channels", natural))
		return native.Buffer{}, native.Info{}
	}
	out := natural
	if reqComp != 0 {
		out = reqComp
	}

	var samples gocv.Mat
	if float {
		samples = toFloat(src)
	} else {
		samples = toBytes(src)
	}
	defer samples.Close()

	result := convertChannels(samples, natural, out, float)
	if float && !isFloat(src) {
		linearize(&result, out)
	}

	ptr, ok := dataPointer(result, float)
	if !ok {
		_ = result.Close()
		d.logger.Debug("decoded mat has no data", zap.String("entry", entry))
		return native.Buffer{}, native.Info{}
	}

	d.mu.Lock()
	d.mats[ptr] = result
	d.mu.Unlock()

	return native.BufferAt(ptr), native.Info{Width: src.Cols(), Height: src.Rows(), Channels: natural}
}

// Outstanding returns the number of buffers not yet freed.
func (d *Decoder) Outstanding() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.mats)
}

func depthOf(m gocv.Mat) gocv.MatType {
	return m.Type() & 7
}

func isFloat(m gocv.Mat) bool {
	switch depthOf(m) {
	case gocv.MatTypeCV32F, gocv.MatTypeCV64F:
		return true
	}
	return false
}

// toBytes converts any sample depth to 8-bit. Float sources are gamma encoded.
func toBytes(src gocv.Mat) gocv.Mat {
	dst := gocv.NewMat()
	switch {
	case isFloat(src):
		f := gocv.NewMat()
		defer f.Close()
		src.ConvertTo(&f, gocv.MatTypeCV32F)
		zero := gocv.NewMatWithSizeFromScalar(gocv.NewScalar(0, 0, 0, 0), f.Rows(), f.Cols(), f.Type())
		defer zero.Close()
		gocv.Max(f, zero, &f)
		gocv.Pow(f, invGamma, &f)
		f.ConvertToWithParams(&dst, gocv.MatTypeCV8U, 255, 0)
	case depthOf(src) == gocv.MatTypeCV16U:
		src.ConvertToWithParams(&dst, gocv.MatTypeCV8U, 1.0/257, 0)
	default:
		src.ConvertTo(&dst, gocv.MatTypeCV8U)
	}
	return dst
}

// toFloat converts any sample depth to float32. Integer sources are scaled to [0, 1] and
// linearized later, once the alpha channel is known.
func toFloat(src gocv.Mat) gocv.Mat {
	dst := gocv.NewMat()
	switch {
	case isFloat(src):
		src.ConvertTo(&dst, gocv.MatTypeCV32F)
	case depthOf(src) == gocv.MatTypeCV16U:
		src.ConvertToWithParams(&dst, gocv.MatTypeCV32F, 1.0/math.MaxUint16, 0)
	default:
		src.ConvertToWithParams(&dst, gocv.MatTypeCV32F, 1.0/math.MaxUint8, 0)
	}
	return dst
}

// convertChannels maps OpenCV's BGR(A) layout with from channels to RGB(A) with to channels.
func convertChannels(m gocv.Mat, from, to int, float bool) gocv.Mat {
	dst := gocv.NewMat()

	if to == 2 {
		var grey gocv.Mat
		switch from {
		case 3:
			grey = gocv.NewMat()
			gocv.CvtColor(m, &grey, gocv.ColorBGRToGray)
		case 4:
			grey = gocv.NewMat()
			gocv.CvtColor(m, &grey, gocv.ColorBGRAToGray)
		default:
			grey = m.Clone()
		}
		defer grey.Close()

		var alpha gocv.Mat
		if from == 4 {
			planes := gocv.Split(m)
			alpha = planes[3]
			for _, p := range planes[:3] {
				_ = p.Close()
			}
		} else {
			alpha = opaque(m, float)
		}
		defer alpha.Close()

		gocv.Merge([]gocv.Mat{grey, alpha}, &dst)
		return dst
	}

	switch from*10 + to {
	case 11:
		m.CopyTo(&dst)
	case 13:
		gocv.CvtColor(m, &dst, gocv.ColorGrayToBGR)
	case 14:
		gocv.CvtColor(m, &dst, gocv.ColorGrayToBGRA)
	case 31:
		gocv.CvtColor(m, &dst, gocv.ColorBGRToGray)
	case 33:
		gocv.CvtColor(m, &dst, gocv.ColorBGRToRGB)
	case 34:
		gocv.CvtColor(m, &dst, gocv.ColorBGRToRGBA)
	case 41:
		gocv.CvtColor(m, &dst, gocv.ColorBGRAToGray)
	case 43:
		gocv.CvtColor(m, &dst, gocv.ColorBGRAToRGB)
	case 44:
		gocv.CvtColor(m, &dst, gocv.ColorBGRAToRGBA)
	}
	return dst
}

func opaque(m gocv.Mat, float bool) gocv.Mat {
	typ, v := gocv.MatTypeCV8UC1, 255.0
	if float {
		typ, v = gocv.MatTypeCV32FC1, 1
	}
	return gocv.NewMatWithSizeFromScalar(gocv.NewScalar(v, v, v, v), m.Rows(), m.Cols(), typ)
}

// linearize applies gamma 2.2 to colour channels of a float mat, leaving alpha linear.
func linearize(m *gocv.Mat, channels int) {
	if channels != 2 && channels != 4 {
		gocv.Pow(*m, gamma, m)
		return
	}

	planes := gocv.Split(*m)
	defer func() {
		for _, p := range planes {
			_ = p.Close()
		}
	}()
	for i := 0; i < channels-1; i++ {
		gocv.Pow(planes[i], gamma, &planes[i])
	}
	gocv.Merge(planes, m)
}

func dataPointer(m gocv.Mat, float bool) (unsafe.Pointer, bool) {
	if m.Empty() || !m.IsContinuous() {
		return nil, false
	}
	if float {
		pix, err := m.DataPtrFloat32()
		if err != nil || len(pix) == 0 {
			return nil, false
		}
		return unsafe.Pointer(&pix[0]), true
	}
	pix, err := m.DataPtrUint8()
	if err != nil || len(pix) == 0 {
		return nil, false
	}
	return unsafe.Pointer(&pix[0]), true
}
