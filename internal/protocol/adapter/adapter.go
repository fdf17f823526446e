package adapter

// Adapter 统一协议适配器接口：用于接入复用器绑定
// 要求：
// - Sniff 用于首包初判
// - ProcessBytes 处理来自连接/串口的原始字节流（内部负责半包/粘包）
type Adapter interface {
	Sniff(prefix []byte) bool
	ProcessBytes(p []byte) error
}

// Named 带协议名的适配器，名称写入连接的协议标记
type Named struct {
	Name string
	Adapter
}
