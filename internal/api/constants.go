package api

// 列表分页
const (
	DefaultFrameLimit    = 100
	DefaultReceiverLimit = 50
	MaxListLimit         = 1000
)

// clampLimit 把 limit 限制在 (0, MaxListLimit]，非法值回退到 def
func clampLimit(limit, def int) int {
	if limit <= 0 {
		return def
	}
	return min(limit, MaxListLimit)
}
