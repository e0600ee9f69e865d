//go:build linux

package hal

import (
	"fmt"
	"os"
	"unsafe"

	"golang.org/x/sys/unix"
)

// From linux/fb.h.
const (
	fbioGetVScreenInfo = 0x4600
	fbioGetFScreenInfo = 0x4602
)

type fbBitfield struct {
	Offset   uint32
	Length   uint32
	MSBRight uint32
}

type fbVarScreenInfo struct {
	XRes         uint32
	YRes         uint32
	XResVirtual  uint32
	YResVirtual  uint32
	XOffset      uint32
	YOffset      uint32
	BitsPerPixel uint32
	Grayscale    uint32
	Red          fbBitfield
	Green        fbBitfield
	Blue         fbBitfield
	Transp       fbBitfield
	NonStd       uint32
	Activate     uint32
	Height       uint32
	Width        uint32
	AccelFlags   uint32
	PixClock     uint32
	LeftMargin   uint32
	RightMargin  uint32
	UpperMargin  uint32
	LowerMargin  uint32
	HSyncLen     uint32
	VSyncLen     uint32
	Sync         uint32
	VMode        uint32
	Rotate       uint32
	Colorspace   uint32
	Reserved     [4]uint32
}

type fbFixScreenInfo struct {
	ID           [16]byte
	SMemStart    uintptr
	SMemLen      uint32
	Type         uint32
	TypeAux      uint32
	Visual       uint32
	XPanStep     uint16
	YPanStep     uint16
	YWrapStep    uint16
	LineLength   uint32
	MMIOStart    uintptr
	MMIOLen      uint32
	Accel        uint32
	Capabilities uint16
	Reserved     [2]uint16
}

// fbDevice is a Linux framebuffer device (/dev/fbN) mapped into memory.
type fbDevice struct {
	f      *os.File
	mem    []byte
	width  int
	height int
	stride int
	id     string
}

func openFBDev(path string) (*fbDevice, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("fbdev: %w", err)
	}

	var vinfo fbVarScreenInfo
	var finfo fbFixScreenInfo
	if err := fbIoctl(f, fbioGetVScreenInfo, unsafe.Pointer(&vinfo)); err != nil {
		f.Close()
		return nil, fmt.Errorf("fbdev: %s: FBIOGET_VSCREENINFO: %w", path, err)
	}
	if err := fbIoctl(f, fbioGetFScreenInfo, unsafe.Pointer(&finfo)); err != nil {
		f.Close()
		return nil, fmt.Errorf("fbdev: %s: FBIOGET_FSCREENINFO: %w", path, err)
	}
	if !isBGRX(&vinfo) {
		f.Close()
		return nil, fmt.Errorf("fbdev: %s: %d bpp r@%d g@%d b@%d: %w", path,
			vinfo.BitsPerPixel, vinfo.Red.Offset, vinfo.Green.Offset, vinfo.Blue.Offset, ErrUnsupportedFormat)
	}

	stride := int(finfo.LineLength)
	height := int(vinfo.YRes)
	if stride*height > int(finfo.SMemLen) {
		f.Close()
		return nil, fmt.Errorf("fbdev: %s: %d rows of %d bytes exceed %d bytes of video memory", path, height, stride, finfo.SMemLen)
	}

	mem, err := unix.Mmap(int(f.Fd()), 0, int(finfo.SMemLen), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("fbdev: %s: mmap: %w", path, err)
	}

	return &fbDevice{
		f:      f,
		mem:    mem,
		width:  int(vinfo.XRes),
		height: height,
		stride: stride,
		id:     cString(finfo.ID[:]),
	}, nil
}

func fbIoctl(f *os.File, req uintptr, arg unsafe.Pointer) error {
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, f.Fd(), req, uintptr(arg))
	if errno != 0 {
		return errno
	}
	return nil
}

func isBGRX(v *fbVarScreenInfo) bool {
	return v.BitsPerPixel == 32 &&
		v.Blue.Offset == 0 && v.Green.Offset == 8 && v.Red.Offset == 16 &&
		v.Red.Length == 8 && v.Green.Length == 8 && v.Blue.Length == 8
}

func cString(b []byte) string {
	for i, c := range b {
		if c == 0 {
			return string(b[:i])
		}
	}
	return string(b)
}

func (d *fbDevice) Width() int          { return d.width }
func (d *fbDevice) Height() int         { return d.height }
func (d *fbDevice) Format() PixelFormat { return PixelFormatBGRX8888 }
func (d *fbDevice) StrideBytes() int    { return d.stride }

func (d *fbDevice) WriteFrame(frame []byte) error {
	if d.mem == nil {
		return os.ErrClosed
	}
	if len(frame) != d.stride*d.height {
		return fmt.Errorf("fbdev: frame is %d bytes, want %d", len(frame), d.stride*d.height)
	}
	copy(d.mem, frame)
	return nil
}

func (d *fbDevice) Close() error {
	var err error
	if d.mem != nil {
		err = unix.Munmap(d.mem)
		d.mem = nil
	}
	if cerr := d.f.Close(); err == nil {
		err = cerr
	}
	return err
}
