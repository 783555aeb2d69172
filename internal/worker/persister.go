package worker

import (
	"github.com/spec-kit/seatboard/internal/service"
)

// StartBoardPersister registers the handlers that persist the board after each change.
func StartBoardPersister(persister *service.PersisterService) {
	if persister == nil {
		return
	}
	persister.RegisterHandlers()
}
