package service

import "errors"

// Build stages. Each failure is wrapped with the sentinel of its stage.
var (
	ErrLoad     = errors.New("load deck")
	ErrLayout   = errors.New("lay out deck")
	ErrValidate = errors.New("validate deck")
	ErrRender   = errors.New("render deck")
	ErrWrite    = errors.New("write presentation")
	ErrWorkbook = errors.New("write chart workbook")
	ErrRecord   = errors.New("record build")
	ErrNoLedger = errors.New("build ledger is disabled")
)
