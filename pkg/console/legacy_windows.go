//go:build windows

package console

import (
	"io"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/arthur-debert/tinta/pkg/errors"
)

var (
	kernel32                       = windows.NewLazySystemDLL("kernel32.dll")
	procSetConsoleTextAttribute    = kernel32.NewProc("SetConsoleTextAttribute")
	procFillConsoleOutputCharacter = kernel32.NewProc("FillConsoleOutputCharacterW")
	procFillConsoleOutputAttribute = kernel32.NewProc("FillConsoleOutputAttribute")
	procGetConsoleCursorInfo       = kernel32.NewProc("GetConsoleCursorInfo")
	procSetConsoleCursorInfo       = kernel32.NewProc("SetConsoleCursorInfo")
	procSetConsoleTitle            = kernel32.NewProc("SetConsoleTitleW")
)

type consoleCursorInfo struct {
	size    uint32
	visible int32
}

type win32Term struct {
	handle   windows.Handle
	out      io.Writer
	defaults uint16
}

// NewWin32Term drives a Windows console through the console API
func NewWin32Term(w io.Writer) (LegacyTerm, error) {
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return nil, errors.New(errors.ErrCapabilityMismatch, "legacy console needs a file handle")
	}
	h := windows.Handle(f.Fd())
	var info windows.ConsoleScreenBufferInfo
	if err := windows.GetConsoleScreenBufferInfo(h, &info); err != nil {
		return nil, errors.Wrap(err, errors.ErrCapabilityMismatch, "not a console")
	}
	return &win32Term{handle: h, out: w, defaults: info.Attributes}, nil
}

func (t *win32Term) info() (windows.ConsoleScreenBufferInfo, error) {
	var info windows.ConsoleScreenBufferInfo
	err := windows.GetConsoleScreenBufferInfo(t.handle, &info)
	return info, err
}

func (t *win32Term) WriteText(s string) error {
	_, err := io.WriteString(t.out, s)
	return err
}

func (t *win32Term) DefaultAttributes() uint16 { return t.defaults }

func (t *win32Term) SetAttributes(attr uint16) error {
	r, _, err := procSetConsoleTextAttribute.Call(uintptr(t.handle), uintptr(attr))
	if r == 0 {
		return err
	}
	return nil
}

func (t *win32Term) setCursor(pos windows.Coord) error {
	if pos.X < 0 {
		pos.X = 0
	}
	if pos.Y < 0 {
		pos.Y = 0
	}
	return windows.SetConsoleCursorPosition(t.handle, pos)
}

func (t *win32Term) MoveCursor(rows, cols int) error {
	info, err := t.info()
	if err != nil {
		return err
	}
	pos := info.CursorPosition
	pos.Y += int16(rows)
	pos.X += int16(cols)
	if pos.X >= info.Size.X {
		pos.X = info.Size.X - 1
	}
	return t.setCursor(pos)
}

func (t *win32Term) MoveToColumn(col int) error {
	info, err := t.info()
	if err != nil {
		return err
	}
	return t.setCursor(windows.Coord{X: int16(col), Y: info.CursorPosition.Y})
}

func (t *win32Term) EraseLine(mode int) error {
	info, err := t.info()
	if err != nil {
		return err
	}
	start := info.CursorPosition
	length := int(info.Size.X - start.X)
	switch mode {
	case 1:
		start.X = 0
		length = int(info.CursorPosition.X) + 1
	case 2:
		start.X = 0
		length = int(info.Size.X)
	}
	coord := uintptr(uint32(uint16(start.X)) | uint32(uint16(start.Y))<<16)
	var written uint32
	if r, _, err := procFillConsoleOutputCharacter.Call(uintptr(t.handle), uintptr(' '), uintptr(length), coord, uintptr(unsafe.Pointer(&written))); r == 0 {
		return err
	}
	if r, _, err := procFillConsoleOutputAttribute.Call(uintptr(t.handle), uintptr(t.defaults), uintptr(length), coord, uintptr(unsafe.Pointer(&written))); r == 0 {
		return err
	}
	return nil
}

func (t *win32Term) ShowCursor(show bool) error {
	var ci consoleCursorInfo
	if r, _, err := procGetConsoleCursorInfo.Call(uintptr(t.handle), uintptr(unsafe.Pointer(&ci))); r == 0 {
		return err
	}
	ci.visible = 0
	if show {
		ci.visible = 1
	}
	if r, _, err := procSetConsoleCursorInfo.Call(uintptr(t.handle), uintptr(unsafe.Pointer(&ci))); r == 0 {
		return err
	}
	return nil
}

func (t *win32Term) SetTitle(title string) error {
	p, err := windows.UTF16PtrFromString(title)
	if err != nil {
		return err
	}
	if r, _, err := procSetConsoleTitle.Call(uintptr(unsafe.Pointer(p))); r == 0 {
		return err
	}
	return nil
}
