package share

// ViewerSession 是访客会话的进程内状态，不落库
// 一个会话同一时间只能查看一个宝宝，对新宝宝的授权会覆盖旧的授权。
// 状态只在当前会话内可见，请求间通过签发的访客 Token 重建。
type ViewerSession struct {
	authenticated bool
	babyID        uint64
}

// NewViewerSession 创建一个未授权的空会话
func NewViewerSession() *ViewerSession {
	return &ViewerSession{}
}

// Grant 将会话标记为已授权查看指定宝宝，覆盖之前的授权
func (s *ViewerSession) Grant(babyID uint64) {
	s.authenticated = true
	s.babyID = babyID
}

// IsGranted 返回会话是否已授权
func (s *ViewerSession) IsGranted() bool {
	return s.authenticated
}

// CurrentSubject 返回当前授权查看的宝宝ID，未授权时返回 (0, false)
func (s *ViewerSession) CurrentSubject() (uint64, bool) {
	if !s.authenticated {
		return 0, false
	}
	return s.babyID, true
}

// Clear 重置为未授权状态，可以重复调用
// 用于访客主动退出，也用于链接被撤销后的强制重置。
// 注意撤销链接不会主动清掉已在内存里的授权，访客的下一次资源
// 读取会因为活跃链接不存在而失败，由调用方在那时 Clear。
func (s *ViewerSession) Clear() {
	s.authenticated = false
	s.babyID = 0
}
