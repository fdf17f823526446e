package tcpserver

import (
	padapter "github.com/taoyao-code/ubx-gateway/internal/protocol/adapter"
	"go.uber.org/zap"
)

// sniffLen 初判使用的前缀长度
const sniffLen = 8

// Mux 多协议复用器：首包初判 -> 绑定协议 -> 直通处理。
// 接收机常把 NMEA 文本与 UBX 帧混发，首包未识别时投递给全部适配器，直至某个适配器认领。
type Mux struct {
	adapters []padapter.Named
	logger   *zap.Logger
}

func NewMux(logger *zap.Logger, adapters ...padapter.Named) *Mux {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Mux{adapters: adapters, logger: logger}
}

// BindToConn 为连接安装 onRead
func (m *Mux) BindToConn(cc *ConnContext) {
	cc.SetOnRead(m.Handler(func(name string) { cc.SetProtocol(name) }, remoteOf(cc)))
}

// Handler 返回按首包识别协议的字节回调；onDecided 在协议确定时触发一次
func (m *Mux) Handler(onDecided func(name string), source string) func([]byte) {
	var bound *padapter.Named
	return func(p []byte) {
		if bound == nil {
			pref := p
			if len(pref) > sniffLen {
				pref = pref[:sniffLen]
			}
			for i := range m.adapters {
				if m.adapters[i].Sniff(pref) {
					bound = &m.adapters[i]
					break
				}
			}
			if bound != nil {
				m.logger.Info("protocol identified",
					zap.String("source", source),
					zap.String("protocol", bound.Name),
				)
				if onDecided != nil {
					onDecided(bound.Name)
				}
			} else {
				m.logger.Debug("unknown prefix, trying all adapters",
					zap.String("source", source),
					zap.Int("data_len", len(p)),
				)
				for _, a := range m.adapters {
					if err := a.ProcessBytes(p); err != nil {
						m.logger.Warn("adapter process failed", zap.String("protocol", a.Name), zap.Error(err))
					}
				}
				return
			}
		}
		if err := bound.ProcessBytes(p); err != nil {
			m.logger.Warn("adapter process failed", zap.String("protocol", bound.Name), zap.Error(err))
		}
	}
}

func remoteOf(cc *ConnContext) string {
	if cc == nil || cc.c == nil {
		return ""
	}
	return cc.RemoteAddr().String()
}
