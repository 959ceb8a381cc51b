package event

import "errors"

// Event ドメインのエラー定義
var (
	ErrEventNotFound        = errors.New("イベントが見つかりません")
	ErrEventIDRequired      = errors.New("イベントIDは必須です")
	ErrInvalidParticipants  = errors.New("参加人数は0以上である必要があります")
	ErrEventTimeNotInFuture = errors.New("イベント時刻は現在より後である必要があります")
	ErrInvalidTimestamp     = errors.New("日時の形式が不正です")
)

// IsValidationError は値オブジェクトの検証エラーかを返す
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidParticipants) ||
		errors.Is(err, ErrEventTimeNotInFuture) ||
		errors.Is(err, ErrInvalidTimestamp) ||
		errors.Is(err, ErrEventIDRequired)
}
