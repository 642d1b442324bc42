package errs

const (
	ErrCode_OK            = 0
	ErrCode_Unknown       = 1
	ErrCode_Unmarshal     = 2
	ErrCode_Marshal       = 3
	ErrCode_InvalidPeriod = 100
	ErrCode_InvalidConfig = 101
	ErrCode_ClockClosed   = 200
	ErrCode_ClockBusy     = 201
	ErrCode_NoReceiver    = 202
)

var (
	Unknown       = CreateCodeError(ErrCode_Unknown, "UNKNOWN")
	Unmarshal     = CreateCodeError(ErrCode_Unmarshal, "UNMARSHAL")
	Marshal       = CreateCodeError(ErrCode_Marshal, "MARSHAL")
	InvalidPeriod = CreateCodeError(ErrCode_InvalidPeriod, "INVALID_PERIOD")
	InvalidConfig = CreateCodeError(ErrCode_InvalidConfig, "INVALID_CONFIG")
	ClockClosed   = CreateCodeError(ErrCode_ClockClosed, "CLOCK_CLOSED")
	ClockBusy     = CreateCodeError(ErrCode_ClockBusy, "CLOCK_BUSY")
	NoReceiver    = CreateCodeError(ErrCode_NoReceiver, "NO_RECEIVER")
)
