package cext

import "github.com/tliron/commonlog"

var log = commonlog.GetLogger("nativecall.cext")
