package ubx

import "go.uber.org/zap"

// Adapter UBX 协议适配器：流式解码 + 路由表
type Adapter struct {
	decoder *StreamDecoder
	table   *Table
	onError func(error)
}

func NewAdapter(maxPayload int) *Adapter {
	return &Adapter{decoder: NewStreamDecoder(maxPayload), table: NewTable()}
}

// SetLogger 设置日志器
func (a *Adapter) SetLogger(l *zap.Logger) { a.decoder.SetLogger(l) }

// SetErrorHook 设置帧级失败回调（校验失败、超长帧），逐个错误触发
func (a *Adapter) SetErrorHook(fn func(error)) { a.onError = fn }

// Register 注册身份处理器
func (a *Adapter) Register(id ID, h Handler) { a.table.Register(id, h) }

// RegisterClass 注册类别处理器
func (a *Adapter) RegisterClass(c Class, h Handler) { a.table.RegisterClass(c, h) }

// SetDefault 设置默认处理器
func (a *Adapter) SetDefault(h Handler) { a.table.SetDefault(h) }

// Stats 解码统计
func (a *Adapter) Stats() StreamStats { return a.decoder.Stats() }

// ProcessBytes 处理上行字节流；帧级失败只通过回调上报，路由错误直接返回
func (a *Adapter) ProcessBytes(p []byte) error {
	frames, err := a.decoder.Feed(p)
	if err != nil && a.onError != nil {
		for _, e := range unjoin(err) {
			a.onError(e)
		}
	}
	for _, fr := range frames {
		if err := a.table.Route(fr); err != nil {
			return err
		}
	}
	return nil
}

// Sniff 判断前缀是否为 UBX 同步头
func (a *Adapter) Sniff(prefix []byte) bool {
	if len(prefix) < 1 || prefix[0] != Sync1 {
		return false
	}
	return len(prefix) < 2 || prefix[1] == Sync2
}

func unjoin(err error) []error {
	if j, ok := err.(interface{ Unwrap() []error }); ok {
		return j.Unwrap()
	}
	return []error{err}
}
