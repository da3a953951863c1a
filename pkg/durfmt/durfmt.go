// Package durfmt 负责“Aufenthaltszeit in QS”（工单在质检站的停留时长）的
// 德语显示格式：
//
//	< 24 小时:  "3 Stunden, 12 Minuten, 45 Sekunden"
//	≥ 24 小时:  "2 Tage, 3 Stunden, 12 Minuten"   （不再显示秒）
//
// 单数天写作 "1 Tag"，复数写作 "n Tage"。
package durfmt

import (
	"fmt"
	"time"
)

// Split 将时长拆为 天/时/分/秒 四个分量（负值按 0 处理）
func Split(d time.Duration) (days, hours, minutes, seconds int) {
	if d < 0 {
		d = 0
	}
	total := int(d / time.Second)
	seconds = total % 60
	minutes = (total / 60) % 60
	hours = (total / 3600) % 24
	days = total / 86400
	return
}

// Aufenthaltszeit 格式化停留时长
func Aufenthaltszeit(d time.Duration) string {
	days, hours, minutes, seconds := Split(d)

	if days > 0 {
		tag := "Tage"
		if days == 1 {
			tag = "Tag"
		}
		return fmt.Sprintf("%d %s, %d Stunden, %d Minuten", days, tag, hours, minutes)
	}
	return fmt.Sprintf("%d Stunden, %d Minuten, %d Sekunden", hours, minutes, seconds)
}

// Seit 计算并格式化从 zeitstempel 到 now 的停留时长
func Seit(zeitstempel, now time.Time) string {
	return Aufenthaltszeit(now.Sub(zeitstempel))
}
