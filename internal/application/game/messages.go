package game

import (
	"errors"
	"fmt"

	"github.com/hanwool95/game-socket-server/internal/domain"
	"github.com/hanwool95/game-socket-server/internal/infrastructure/ws"
)

const (
	msgRoomFull          = "방이 가득 찼습니다."
	msgRoomNotFound      = "방을 찾지 못했습니다."
	msgNotHost           = "방장만 게임 시작을 누를 수 있습니다."
	msgDuplicateNickname = "이미 사용 중인 닉네임입니다."
	msgAlreadyInRoom     = "이미 방에 참여하고 있습니다."
	msgAlreadyStarted    = "이미 게임이 시작되었습니다."
	msgNotStarted        = "게임이 아직 시작되지 않았습니다."
	msgNoActiveRound     = "진행 중인 라운드가 없습니다."
	msgMalformed         = "잘못된 요청입니다."
	msgUnknownEvent      = "알 수 없는 이벤트입니다."
	msgSecretUnavailable = "다음 문제를 불러오지 못했습니다. 건너뛰기를 눌러 다시 시도하세요."
	msgInternal          = "일시적인 오류가 발생했습니다."

	msgCorrectGuess = "%s님이 정답(%s)을 맞혔습니다! +%d"
	msgRoundSkipped = "라운드를 건너뛰었습니다."
	msgRoundTimeout = "시간이 초과되었습니다."
	msgSetterLeft   = "출제자가 나가서 라운드를 넘깁니다."
)

// UserMessage maps an error to the text shown to the player.
func UserMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrRoomFull):
		return msgRoomFull
	case errors.Is(err, domain.ErrRoomNotFound):
		return msgRoomNotFound
	case errors.Is(err, domain.ErrNotHost):
		return msgNotHost
	case errors.Is(err, domain.ErrDuplicateNickname):
		return msgDuplicateNickname
	case errors.Is(err, domain.ErrAlreadyInRoom):
		return msgAlreadyInRoom
	case errors.Is(err, domain.ErrGameAlreadyStarted):
		return msgAlreadyStarted
	case errors.Is(err, domain.ErrGameNotStarted):
		return msgNotStarted
	case errors.Is(err, domain.ErrNoActiveRound):
		return msgNoActiveRound
	case errors.Is(err, ws.ErrUnknownEvent):
		return msgUnknownEvent
	case errors.Is(err, ws.ErrMalformedFrame):
		return msgMalformed
	case errors.Is(err, domain.ErrInvalidInput):
		return err.Error()
	default:
		return msgInternal
	}
}

func correctGuessMessage(nickname, answer string, award int) string {
	return fmt.Sprintf(msgCorrectGuess, nickname, answer, award)
}

func roundEndMessage(reason string) string {
	switch reason {
	case domain.RoundEndTimeout:
		return msgRoundTimeout
	case domain.RoundEndSetterLeft:
		return msgSetterLeft
	default:
		return msgRoundSkipped
	}
}
