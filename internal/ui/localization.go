package ui

// Localization manages UI text translations
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
}

// Text keys for localization
const (
	KeyAppTitle          = "app_title"
	KeySettings          = "settings"
	KeyFile              = "file"
	KeyLanguage          = "language"
	KeyEnterURL          = "enter_url"
	KeyPaste             = "paste"
	KeyPlaylist          = "playlist"
	KeyPickVideo         = "pick_video"
	KeyPlaylistEmpty     = "playlist_empty"
	KeyLoadingPlaylist   = "loading_playlist"
	KeyExtractFull       = "extract_full"
	KeyStartTime         = "start_time"
	KeyEndTime           = "end_time"
	KeySnippetLength     = "snippet_length"
	KeyFormat            = "format"
	KeyAdvanced          = "advanced"
	KeyFilename          = "filename"
	KeyTopic             = "topic"
	KeyAuthor            = "author"
	KeyExtract           = "extract"
	KeyCancel            = "cancel"
	KeyNewExtraction     = "new_extraction"
	KeyTryAgain          = "try_again"
	KeyDuration          = "duration"
	KeyUploader          = "uploader"
	KeyOpenInBrowser     = "open_in_browser"
	KeySaveToDisk        = "save_to_disk"
	KeySavedTo           = "saved_to"
	KeyShowInFolder      = "show_in_folder"
	KeySaveFailed        = "save_failed"
	KeyHistory           = "history"
	KeyNoHistory         = "no_history"
	KeyClearHistory      = "clear_history"
	KeyConfirmClear      = "confirm_clear"
	KeyExportHistory     = "export_history"
	KeyExportFailed      = "export_failed"
	KeyDownloadDirectory = "download_directory"
	KeyAPIBaseURL        = "api_base_url"
	KeyDefaultFormat     = "default_format"
	KeyPollInterval      = "poll_interval"
	KeyOpenOnComplete    = "open_on_complete"
	KeySave              = "save"
	KeyBrowse            = "browse"
	KeySettingsSaved     = "settings_saved"
	KeyRestartRequired   = "restart_required"
)

// NewLocalization creates a new localization manager
func NewLocalization() *Localization {
	l := &Localization{
		currentLanguage: "en",
		texts:           make(map[string]map[string]string),
	}

	l.initializeTexts()
	return l
}

// SetLanguage sets the current language
func (l *Localization) SetLanguage(lang string) {
	if lang == "system" {
		// Use system locale - simplified to English for now
		lang = "en"
	}

	if _, exists := l.texts[lang]; exists {
		l.currentLanguage = lang
	}
}

// GetText returns localized text for the given key
func (l *Localization) GetText(key string) string {
	if texts, exists := l.texts[l.currentLanguage]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Fallback to English
	if texts, exists := l.texts["en"]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Final fallback - return key itself
	return key
}

// GetCurrentLanguage returns the current language code
func (l *Localization) GetCurrentLanguage() string {
	return l.currentLanguage
}

// GetAvailableLanguages returns map of available languages with their display names
func (l *Localization) GetAvailableLanguages() map[string]string {
	return map[string]string{
		"en": "English",
		"ru": "Русский",
		"pt": "Português",
	}
}

// initializeTexts initializes all text translations
func (l *Localization) initializeTexts() {
	// English texts
	l.texts["en"] = map[string]string{
		KeyAppTitle:          "YT Snippet",
		KeySettings:          "Settings",
		KeyFile:              "File",
		KeyLanguage:          "Language",
		KeyEnterURL:          "Enter YouTube URL (https://youtube.com/watch?v=...)",
		KeyPaste:             "Paste",
		KeyPlaylist:          "Playlist",
		KeyPickVideo:         "Pick a video",
		KeyPlaylistEmpty:     "The playlist has no videos",
		KeyLoadingPlaylist:   "Loading playlist...",
		KeyExtractFull:       "Extract full video",
		KeyStartTime:         "Start (MM:SS)",
		KeyEndTime:           "End (MM:SS)",
		KeySnippetLength:     "Length",
		KeyFormat:            "Format",
		KeyAdvanced:          "Advanced options",
		KeyFilename:          "File name",
		KeyTopic:             "Topic",
		KeyAuthor:            "Preacher / author",
		KeyExtract:           "Extract",
		KeyCancel:            "Cancel",
		KeyNewExtraction:     "New extraction",
		KeyTryAgain:          "Try again",
		KeyDuration:          "Duration",
		KeyUploader:          "Channel",
		KeyOpenInBrowser:     "Open link",
		KeySaveToDisk:        "Save",
		KeySavedTo:           "Saved to",
		KeyShowInFolder:      "Show in folder",
		KeySaveFailed:        "Failed to save file",
		KeyHistory:           "Recent extractions",
		KeyNoHistory:         "No extractions yet",
		KeyClearHistory:      "Clear",
		KeyConfirmClear:      "Clear all extraction history?",
		KeyExportHistory:     "Export",
		KeyExportFailed:      "Failed to export history",
		KeyDownloadDirectory: "Download Directory",
		KeyAPIBaseURL:        "Service URL",
		KeyDefaultFormat:     "Default Format",
		KeyPollInterval:      "Status Check Interval (ms)",
		KeyOpenOnComplete:    "Open files after saving",
		KeySave:              "Save",
		KeyBrowse:            "Browse",
		KeySettingsSaved:     "Settings saved successfully!",
		KeyRestartRequired:   "Service changes apply after restart.",
	}

	// Russian texts
	l.texts["ru"] = map[string]string{
		KeyAppTitle:          "YT Фрагмент",
		KeySettings:          "Настройки",
		KeyFile:              "Файл",
		KeyLanguage:          "Язык",
		KeyEnterURL:          "Введите URL YouTube (https://youtube.com/watch?v=...)",
		KeyPaste:             "Вставить",
		KeyPlaylist:          "Плейлист",
		KeyPickVideo:         "Выберите видео",
		KeyPlaylistEmpty:     "В плейлисте нет видео",
		KeyLoadingPlaylist:   "Загрузка плейлиста...",
		KeyExtractFull:       "Извлечь всё видео",
		KeyStartTime:         "Начало (ММ:СС)",
		KeyEndTime:           "Конец (ММ:СС)",
		KeySnippetLength:     "Длина",
		KeyFormat:            "Формат",
		KeyAdvanced:          "Дополнительно",
		KeyFilename:          "Имя файла",
		KeyTopic:             "Тема",
		KeyAuthor:            "Проповедник / автор",
		KeyExtract:           "Извлечь",
		KeyCancel:            "Отмена",
		KeyNewExtraction:     "Новое извлечение",
		KeyTryAgain:          "Повторить",
		KeyDuration:          "Длительность",
		KeyUploader:          "Канал",
		KeyOpenInBrowser:     "Открыть ссылку",
		KeySaveToDisk:        "Сохранить",
		KeySavedTo:           "Сохранено в",
		KeyShowInFolder:      "Показать в папке",
		KeySaveFailed:        "Не удалось сохранить файл",
		KeyHistory:           "Недавние извлечения",
		KeyNoHistory:         "Извлечений пока нет",
		KeyClearHistory:      "Очистить",
		KeyConfirmClear:      "Очистить всю историю извлечений?",
		KeyExportHistory:     "Экспорт",
		KeyExportFailed:      "Не удалось экспортировать историю",
		KeyDownloadDirectory: "Папка загрузки",
		KeyAPIBaseURL:        "URL сервиса",
		KeyDefaultFormat:     "Формат по умолчанию",
		KeyPollInterval:      "Интервал проверки (мс)",
		KeyOpenOnComplete:    "Открывать файлы после сохранения",
		KeySave:              "Сохранить",
		KeyBrowse:            "Обзор",
		KeySettingsSaved:     "Настройки успешно сохранены!",
		KeyRestartRequired:   "Изменения сервиса вступят в силу после перезапуска.",
	}

	// Portuguese texts
	l.texts["pt"] = map[string]string{
		KeyAppTitle:          "YT Snippet",
		KeySettings:          "Configurações",
		KeyFile:              "Arquivo",
		KeyLanguage:          "Idioma",
		KeyEnterURL:          "Digite URL do YouTube (https://youtube.com/watch?v=...)",
		KeyPaste:             "Colar",
		KeyPlaylist:          "Playlist",
		KeyPickVideo:         "Escolha um vídeo",
		KeyPlaylistEmpty:     "A playlist não tem vídeos",
		KeyLoadingPlaylist:   "Carregando playlist...",
		KeyExtractFull:       "Extrair vídeo completo",
		KeyStartTime:         "Início (MM:SS)",
		KeyEndTime:           "Fim (MM:SS)",
		KeySnippetLength:     "Duração do trecho",
		KeyFormat:            "Formato",
		KeyAdvanced:          "Opções avançadas",
		KeyFilename:          "Nome do arquivo",
		KeyTopic:             "Tema",
		KeyAuthor:            "Pregador / autor",
		KeyExtract:           "Extrair",
		KeyCancel:            "Cancelar",
		KeyNewExtraction:     "Nova extração",
		KeyTryAgain:          "Tentar novamente",
		KeyDuration:          "Duração",
		KeyUploader:          "Canal",
		KeyOpenInBrowser:     "Abrir link",
		KeySaveToDisk:        "Salvar",
		KeySavedTo:           "Salvo em",
		KeyShowInFolder:      "Mostrar na pasta",
		KeySaveFailed:        "Falha ao salvar arquivo",
		KeyHistory:           "Extrações recentes",
		KeyNoHistory:         "Nenhuma extração ainda",
		KeyClearHistory:      "Limpar",
		KeyConfirmClear:      "Limpar todo o histórico de extrações?",
		KeyExportHistory:     "Exportar",
		KeyExportFailed:      "Falha ao exportar histórico",
		KeyDownloadDirectory: "Diretório de Download",
		KeyAPIBaseURL:        "URL do serviço",
		KeyDefaultFormat:     "Formato Padrão",
		KeyPollInterval:      "Intervalo de Verificação (ms)",
		KeyOpenOnComplete:    "Abrir arquivos após salvar",
		KeySave:              "Salvar",
		KeyBrowse:            "Navegar",
		KeySettingsSaved:     "Configurações salvas com sucesso!",
		KeyRestartRequired:   "Alterações do serviço valem após reiniciar.",
	}
}
