package cache

import (
	"time"
)

// TimeUntilNextClose は次の大引け（中国時間15:00）までの期間を返します。
// 日足キャッシュのTTLとして使い、引け後の更新が翌営業日まで残らないようにします。
func TimeUntilNextClose() time.Duration {
	loc, _ := time.LoadLocation("Asia/Shanghai")
	now := time.Now().In(loc)

	// 次の15:00を計算
	nextClose := time.Date(now.Year(), now.Month(), now.Day(), 15, 0, 0, 0, loc)

	// 今日の15:00が既に過ぎている場合は翌日の15:00を使用
	if now.After(nextClose) {
		nextClose = nextClose.Add(24 * time.Hour)
	}

	return nextClose.Sub(now)
}
