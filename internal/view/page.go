package view

import (
	"html/template"

	"edu_portal/internal/model"
)

// Nav 导航栏状态，由当前会话的用户决定
type Nav struct {
	LoggedIn bool
	Username string
	IsAdmin  bool
}

// NavFor 令牌存在但用户信息暂时取不到（后端不可达）时仍按已登录显示
func NavFor(user *model.User, hasToken bool) Nav {
	if user == nil {
		return Nav{LoggedIn: hasToken}
	}
	return Nav{LoggedIn: true, Username: user.Username, IsAdmin: user.IsAdmin()}
}

func (n Nav) ProfileLabel() string {
	switch {
	case n.IsAdmin:
		return "관리자 대시보드"
	case n.Username == "":
		return "내 프로필"
	}
	return n.Username + "의 프로필"
}

func (n Nav) ProfileHref() string {
	if n.IsAdmin {
		return "/admin"
	}
	return "/profile"
}

type NoticeKind string

const (
	NoticeInfo  NoticeKind = "info"
	NoticeError NoticeKind = "error"
)

// Page 所有页面共用的外壳。Data 为各页面自己的视图模型
type Page struct {
	Title      string
	Nav        Nav
	Notice     string
	NoticeKind NoticeKind
	CSRF       template.HTML
	Data       interface{}
}

func (p *Page) Info(msg string) {
	p.Notice, p.NoticeKind = msg, NoticeInfo
}

func (p *Page) Fail(msg string) {
	p.Notice, p.NoticeKind = msg, NoticeError
}
