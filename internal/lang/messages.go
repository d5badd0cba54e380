package lang

type MessageID string

const (
	MainMenuMsgID           MessageID = "main_menu"
	CreateFolderPromptMsgID MessageID = "create_folder_prompt"
	SelectFolderMsgID       MessageID = "select_folder"
	SelectFolderForwardID   MessageID = "select_folder_forward"
	FolderCreatedMsgID      MessageID = "folder_created"
	FolderExistsMsgID       MessageID = "folder_exists_selected"
	FolderSelectedMsgID     MessageID = "folder_selected"
	ReservedNameMsgID       MessageID = "reserved_name"
	InvalidFolderMsgID      MessageID = "invalid_folder"
	OperationCancelledID    MessageID = "operation_cancelled"

	NotAuthorizedMsgID MessageID = "not_authorized"

	ConfirmURLDownloadMsgID     MessageID = "confirm_url_download"
	ConfirmForwardDownloadMsgID MessageID = "confirm_forward_download"
	PendingLostMsgID            MessageID = "pending_lost"
	DownloadCancelledMsgID      MessageID = "download_cancelled"
	FileExistsMsgID             MessageID = "file_exists"

	StartingDownloadMsgID     MessageID = "starting_download"
	DownloadProgressMsgID     MessageID = "download_progress"
	URLDownloadCompletedMsgID MessageID = "url_download_completed"
	DownloadCompletedMsgID    MessageID = "download_completed"
	DownloadErrorMsgID        MessageID = "download_error"
	DownloadErrorStatusMsgID  MessageID = "download_error_status"

	JellyfinRefreshOKMsgID     MessageID = "jellyfin_refresh_ok"
	JellyfinRefreshFailedMsgID MessageID = "jellyfin_refresh_failed"

	FolderCreateErrorMsgID MessageID = "folder_create_error"

	HistoryEmptyMsgID  MessageID = "history_empty"
	HistoryHeaderMsgID MessageID = "history_header"
	HistoryErrorMsgID  MessageID = "history_error"

	CreateFolderButtonID   MessageID = "btn_create_folder"
	SelectFolderButtonID   MessageID = "btn_select_folder"
	CancelButtonID         MessageID = "btn_cancel"
	BackToMainMenuButtonID MessageID = "btn_back_to_main_menu"
	ConfirmButtonID        MessageID = "btn_confirm"
	ChangeFolderButtonID   MessageID = "btn_change_folder"
)

var messages = map[MessageID]map[string]string{
	MainMenuMsgID:           {"en": "Choose an option or send download link:"},
	CreateFolderPromptMsgID: {"en": "Enter a name for the new folder:"},
	SelectFolderMsgID:       {"en": "Select a folder:"},
	SelectFolderForwardID:   {"en": "Select a folder for the forwarded file:"},
	FolderCreatedMsgID:      {"en": "Folder %q created and selected."},
	FolderExistsMsgID:       {"en": "Folder %q already exists. It has been selected."},
	FolderSelectedMsgID:     {"en": "Folder %q selected."},
	ReservedNameMsgID:       {"en": "This name is reserved or contains a reserved word. Please choose a different name for your folder."},
	InvalidFolderMsgID:      {"en": "Invalid folder selection. Please try again."},
	OperationCancelledID:    {"en": "Operation cancelled."},

	NotAuthorizedMsgID: {"en": "Sorry, you are not authorized to use this bot."},

	ConfirmURLDownloadMsgID:     {"en": "You're about to download to the folder: %s\nDo you want to proceed, change the folder, or cancel?"},
	ConfirmForwardDownloadMsgID: {"en": "Do you want to download %q to the folder %q?"},
	PendingLostMsgID:            {"en": "Sorry, I couldn't find the download information. Please try again."},
	DownloadCancelledMsgID:      {"en": "Download cancelled."},
	FileExistsMsgID:             {"en": "File %q already exists in folder %q. Skipping download."},

	StartingDownloadMsgID:     {"en": "Starting download..."},
	DownloadProgressMsgID:     {"en": "Downloading to: %s\nProgress: %d%%\n%s"},
	URLDownloadCompletedMsgID: {"en": "%s\n\nFile downloaded successfully: %s\n\n%s"},
	DownloadCompletedMsgID:    {"en": "Download completed: %s\n\n%s"},
	DownloadErrorMsgID:        {"en": "Error occurred while downloading: %s"},
	DownloadErrorStatusMsgID:  {"en": "Error occurred: %s (Status: %d)"},

	JellyfinRefreshOKMsgID:     {"en": "Jellyfin library refresh initiated successfully."},
	JellyfinRefreshFailedMsgID: {"en": "Failed to refresh Jellyfin library. Please check server logs."},

	FolderCreateErrorMsgID: {"en": "Failed to create folder: %s"},

	HistoryEmptyMsgID:  {"en": "You have not downloaded anything yet."},
	HistoryHeaderMsgID: {"en": "Your downloads:"},
	HistoryErrorMsgID:  {"en": "Failed to load your download history."},

	CreateFolderButtonID:   {"en": "Create Folder"},
	SelectFolderButtonID:   {"en": "Select Folder"},
	CancelButtonID:         {"en": "Cancel"},
	BackToMainMenuButtonID: {"en": "Back to Main Menu"},
	ConfirmButtonID:        {"en": "Confirm"},
	ChangeFolderButtonID:   {"en": "Change Folder"},
}
