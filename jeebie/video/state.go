package video

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
)

// StateWriter is the minimal interface SaveState needs from its caller —
// narrower than io.Writer only in name, so a caller isn't coupled to a
// larger save-state container this package doesn't define (§1 Non-goals).
type StateWriter interface {
	io.Writer
}

// StateReader is LoadState's counterpart to StateWriter.
type StateReader interface {
	io.Reader
}

// SaveState serializes the PPU's persisted state in the fixed byte order
// mandated by §6:
//
//	VRAM bank 0 (8192 bytes), OAM (160 bytes),
//	LCDC, BGP, OBP0, OBP1, STAT, LY, LYC, SCY, SCX, WY, WX,
//	CGB-flag (1 byte), double_speed (1 byte)
//
//	if CGB: VRAM bank 1 (8192 bytes), VBK.active_bank (1 byte),
//	BCPS (value, auto_inc, index, hl), BCPD (32 words),
//	OCPS (value, auto_inc, index, hl), OCPD (32 words)
//
//	scanline parameter log: 144 rows of (SCX, SCY, WX+7, WY, tiledata_select)
//	framebuffer: 144*160 raw pixels (color + compositor flags)
//
// Tile/sprite caches are not persisted; LoadState requests a full rebuild.
func (p *PPU) SaveState(w StateWriter) error {
	bw := bufio.NewWriter(w)

	if _, err := bw.Write(p.vram.bank[0][:]); err != nil {
		return err
	}
	if _, err := bw.Write(p.oam[:]); err != nil {
		return err
	}

	regs := []uint8{
		p.lcdc.Get(), p.bgp.Get(), p.obp0.Get(), p.obp1.Get(),
		p.stat.Get(), p.ly, p.lyc, p.scy, p.scx, p.wy, p.wx,
	}
	for _, b := range regs {
		if err := bw.WriteByte(b); err != nil {
			return err
		}
	}

	if err := bw.WriteByte(boolByte(p.cgb)); err != nil {
		return err
	}
	if err := bw.WriteByte(boolByte(p.doubleSpeed)); err != nil {
		return err
	}

	if p.cgb {
		if _, err := bw.Write(p.vram.bank[1][:]); err != nil {
			return err
		}
		if err := bw.WriteByte(p.vbk.activeBank); err != nil {
			return err
		}
		if err := writePaletteIndex(bw, p.bcps); err != nil {
			return err
		}
		if err := writePaletteColors(bw, p.bcpd); err != nil {
			return err
		}
		if err := writePaletteIndex(bw, p.ocps); err != nil {
			return err
		}
		if err := writePaletteColors(bw, p.ocpd); err != nil {
			return err
		}
	}

	for _, row := range p.scanlineLog {
		if err := writeScanlineParams(bw, row); err != nil {
			return err
		}
	}

	for y := 0; y < FramebufferHeight; y++ {
		for _, pixel := range p.fb.Row(y) {
			if err := binary.Write(bw, binary.LittleEndian, pixel); err != nil {
				return err
			}
		}
	}

	return bw.Flush()
}

// LoadState restores state written by SaveState. It returns a *ConfigError
// if the PPU's CGB/DMG mode does not match how useCGB claims the state was
// captured, or if the stream's own persisted CGB-flag byte disagrees with
// useCGB, since the stream layout differs between the two modes (§6, §7).
func (p *PPU) LoadState(r StateReader, useCGB bool) error {
	if useCGB != p.cgb {
		return &ConfigError{Want: useCGB, Got: p.cgb}
	}

	br := bufio.NewReader(r)

	if _, err := io.ReadFull(br, p.vram.bank[0][:]); err != nil {
		return err
	}
	if _, err := io.ReadFull(br, p.oam[:]); err != nil {
		return err
	}

	regs := make([]byte, 11)
	if _, err := io.ReadFull(br, regs); err != nil {
		return err
	}
	p.lcdc.Set(regs[0])
	p.bgp.Set(regs[1])
	p.obp0.Set(regs[2])
	p.obp1.Set(regs[3])
	p.stat.Set(regs[4])
	p.ly, p.lyc, p.scy, p.scx = regs[5], regs[6], regs[7], regs[8]
	p.wy, p.wx = regs[9], regs[10]

	flags := make([]byte, 2)
	if _, err := io.ReadFull(br, flags); err != nil {
		return err
	}
	storedCGB := flags[0] != 0
	if storedCGB != useCGB {
		return &ConfigError{Want: storedCGB, Got: p.cgb}
	}
	p.doubleSpeed = flags[1] != 0

	if p.cgb {
		if _, err := io.ReadFull(br, p.vram.bank[1][:]); err != nil {
			return err
		}
		vbk, err := br.ReadByte()
		if err != nil {
			return err
		}
		p.vbk.Set(vbk)
		if err := readPaletteIndex(br, p.bcps); err != nil {
			return err
		}
		if err := readPaletteColors(br, p.bcpd); err != nil {
			return err
		}
		if err := readPaletteIndex(br, p.ocps); err != nil {
			return err
		}
		if err := readPaletteColors(br, p.ocpd); err != nil {
			return err
		}
	}

	for i := range p.scanlineLog {
		row, err := readScanlineParams(br)
		if err != nil {
			return err
		}
		p.scanlineLog[i] = row
	}

	for y := 0; y < FramebufferHeight; y++ {
		row := p.fb.Row(y)
		for x := range row {
			if err := binary.Read(br, binary.LittleEndian, &row[x]); err != nil {
				return err
			}
		}
	}

	p.clearCache = true
	p.lyWindow = -1
	return nil
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}

// writePaletteIndex persists a BCPS/OCPS register as its four decoded
// fields (value, auto_inc, index, hl) rather than the single raw byte, per
// §4.5/§6.
func writePaletteIndex(w *bufio.Writer, r *PaletteIndexRegister) error {
	fields := []byte{r.value, boolByte(r.autoInc), r.index, boolByte(r.lowByte)}
	_, err := w.Write(fields)
	return err
}

func readPaletteIndex(r *bufio.Reader, dst *PaletteIndexRegister) error {
	fields := make([]byte, 4)
	if _, err := io.ReadFull(r, fields); err != nil {
		return err
	}
	dst.value = fields[0]
	dst.autoInc = fields[1] != 0
	dst.index = fields[2]
	dst.lowByte = fields[3] != 0
	dst.initialized = true
	return nil
}

func writePaletteColors(w *bufio.Writer, r *PaletteColorRegister) error {
	for _, word := range r.mem {
		if err := binary.Write(w, binary.LittleEndian, word); err != nil {
			return err
		}
	}
	return nil
}

func readPaletteColors(r *bufio.Reader, dst *PaletteColorRegister) error {
	for i := range dst.mem {
		if err := binary.Read(r, binary.LittleEndian, &dst.mem[i]); err != nil {
			return err
		}
	}
	return nil
}

func writeScanlineParams(w *bufio.Writer, s scanlineParams) error {
	fields := []byte{s.scx, s.scy, s.wxPlus7, s.wy, boolByte(s.tiledataSelect)}
	_, err := w.Write(fields)
	return err
}

func readScanlineParams(r *bufio.Reader) (scanlineParams, error) {
	fields := make([]byte, 5)
	if _, err := io.ReadFull(r, fields); err != nil {
		return scanlineParams{}, fmt.Errorf("video: reading scanline log entry: %w", err)
	}
	return scanlineParams{
		scx:            fields[0],
		scy:            fields[1],
		wxPlus7:        fields[2],
		wy:             fields[3],
		tiledataSelect: fields[4] != 0,
	}, nil
}
