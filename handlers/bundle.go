package handlers

import (
	directoryRepo "viacampo/database/repository/directory"
)

// HandlerBundle groups all endpoint handlers into one struct handed to route
// registration.
type HandlerBundle struct {
	// DirectoryRepo backs the auth middleware's user lookup.
	DirectoryRepo directoryRepo.DirectoryRepository

	Auth    *AuthHandler
	Tray    *TrayHandler
	Trip    *TripHandler
	Reports *ReportHandler
	Admin   *AdminHandler
}
