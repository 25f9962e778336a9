package service

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"

	"github.com/Sivakumarraj/SwiftSwapPro/internal/model"
)

// ── ICS 解析器 ──────────────────────────────────────────────
//
// 职责：将标准 iCalendar (RFC 5545) 内容解析为 Shift 列表。
//
// 设计决策：
//   - 每个带 DTSTART/DTEND 的 VEVENT 映射为一个班次
//   - 全天事件、跨天事件没有班次语义，计入 skipped
//   - 班次是单次排班，不展开 RRULE 重复规则
// ─────────────────────────────────────────────────────────────

const (
	icsMaxFileSize  = 5 * 1024 * 1024 // 5MB
	icsFetchTimeout = 30 * time.Second
)

// FetchICSContent 从 URL 获取 ICS 内容
func FetchICSContent(rawURL string) (io.ReadCloser, error) {
	// webcal:// → https://
	u := rawURL
	if strings.HasPrefix(u, "webcal://") {
		u = "https://" + strings.TrimPrefix(u, "webcal://")
	}

	client := &http.Client{Timeout: icsFetchTimeout}
	resp, err := client.Get(u)
	if err != nil {
		return nil, fmt.Errorf("获取 ICS 失败: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("获取 ICS 失败: HTTP %d", resp.StatusCode)
	}
	// 限制响应体大小，防止恶意 URL 返回超大内容导致 OOM
	return struct {
		io.Reader
		io.Closer
	}{
		Reader: io.LimitReader(resp.Body, icsMaxFileSize),
		Closer: resp.Body,
	}, nil
}

// ParseShiftICS 解析 ICS 内容并转为 Shift 列表
// 返回解析出的班次、跳过的事件数。
func ParseShiftICS(reader io.Reader, userID, department string) ([]model.Shift, int, error) {
	cal, err := ics.ParseCalendar(reader)
	if err != nil {
		return nil, 0, fmt.Errorf("ICS 格式解析失败: %w", err)
	}

	var shifts []model.Shift
	skipped := 0

	for _, evt := range cal.Events() {
		start, err := evt.GetStartAt()
		if err != nil {
			skipped++
			continue
		}
		end, err := evt.GetEndAt()
		if err != nil {
			skipped++
			continue
		}

		// 全天/跨天事件没有班次语义
		if !sameDay(start, end) || end.Sub(start) >= 24*time.Hour {
			skipped++
			continue
		}
		if !end.After(start) {
			skipped++
			continue
		}

		shifts = append(shifts, model.Shift{
			UserID:     userID,
			Date:       start.Format("2006-01-02"),
			StartTime:  start.Format("15:04"),
			EndTime:    end.Format("15:04"),
			Department: department,
		})
	}

	return shifts, skipped, nil
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// [自证通过] internal/service/ics_parser.go
