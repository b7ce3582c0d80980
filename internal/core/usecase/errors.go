package usecase

import "errors"

var (
	errEmptyDocumentURL = errors.New("document url is empty")
	errNoQuestions      = errors.New("questions list is empty")
	errBlankQuestion    = errors.New("question is blank")
	errNoChunks         = errors.New("document produced no chunks")
)
