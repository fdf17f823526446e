package ubx

import "fmt"

// Checksum UBX 帧尾的两字节校验 (CK_A, CK_B)
type Checksum struct {
	A uint8
	B uint8
}

func (c Checksum) String() string { return fmt.Sprintf("(0x%02x,0x%02x)", c.A, c.B) }

// Fletcher 8 位 Fletcher 累加器：
// a += byte; b += a（均模 256）。
// 覆盖范围：class、id、length 低字节、length 高字节、payload，不含同步头与校验字节本身。
type Fletcher struct {
	a, b uint8
}

// WriteByte 累加一个字节，实现 io.ByteWriter
func (f *Fletcher) WriteByte(c byte) error {
	f.a += c
	f.b += f.a
	return nil
}

// Write 累加一段字节，实现 io.Writer
func (f *Fletcher) Write(p []byte) (int, error) {
	for _, c := range p {
		f.a += c
		f.b += f.a
	}
	return len(p), nil
}

// Sum 当前累加结果
func (f *Fletcher) Sum() Checksum { return Checksum{A: f.a, B: f.b} }

// Reset 清零
func (f *Fletcher) Reset() { f.a, f.b = 0, 0 }

// ComputeChecksum 计算一帧的校验值，验证与编码两条路径共用
func ComputeChecksum(class, id uint8, length uint16, payload []byte) Checksum {
	var f Fletcher
	_ = f.WriteByte(class)
	_ = f.WriteByte(id)
	_ = f.WriteByte(uint8(length))
	_ = f.WriteByte(uint8(length >> 8))
	_, _ = f.Write(payload)
	return f.Sum()
}
