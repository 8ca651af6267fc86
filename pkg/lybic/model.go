package lybic

import (
	"github.com/lybic/lybic-sdk-go/internal/model"
)

// Length is a screen coordinate or distance, absolute pixels or a fraction of
// the screen dimension.
type Length = model.Length

var (
	// Px returns a pixel length, it panics on negative values.
	Px = model.Px
	// Frac returns a fractional length, it panics on zero denominators.
	Frac = model.Frac
	// NewPixelLength returns a pixel length or an error when it's negative.
	NewPixelLength = model.NewPixelLength
	// NewFractionalLength returns a fractional length or an error when the denominator is zero.
	NewFractionalLength = model.NewFractionalLength
)

// Action is a GUI action that can be executed on a sandbox. The concrete
// actions are the *XxxAction types of this package.
type Action = model.Action

// ActionBase has the fields shared by every action.
type ActionBase = model.ActionBase

// ActionInfo describes a registered action type.
type ActionInfo = model.ActionInfo

// ActionUnion is the set of action types a sandbox kind accepts.
type ActionUnion = model.ActionUnion

const (
	ActionUnionAll         = model.ActionUnionAll
	ActionUnionComputerUse = model.ActionUnionComputerUse
	ActionUnionMobileUse   = model.ActionUnionMobileUse
)

// Action types.
type (
	ScreenshotAction       = model.ScreenshotAction
	WaitAction             = model.WaitAction
	FinishedAction         = model.FinishedAction
	FailedAction           = model.FailedAction
	UserTakeoverAction     = model.UserTakeoverAction
	MouseClickAction       = model.MouseClickAction
	MouseDoubleClickAction = model.MouseDoubleClickAction
	MouseTripleClickAction = model.MouseTripleClickAction
	MouseMoveAction        = model.MouseMoveAction
	MouseScrollAction      = model.MouseScrollAction
	MouseDragAction        = model.MouseDragAction
	KeyboardTypeAction     = model.KeyboardTypeAction
	KeyboardHotkeyAction   = model.KeyboardHotkeyAction
	KeyDownAction          = model.KeyDownAction
	KeyUpAction            = model.KeyUpAction
	MobileTapAction        = model.MobileTapAction
	MobileDoubleTapAction  = model.MobileDoubleTapAction
	MobileSwipeAction      = model.MobileSwipeAction
	MobileTypeAction       = model.MobileTypeAction
	MobileHotkeyAction     = model.MobileHotkeyAction
	MobileHomeAction       = model.MobileHomeAction
	MobileBackAction       = model.MobileBackAction
	MobileScreenshotAction = model.MobileScreenshotAction
	MobileWaitAction       = model.MobileWaitAction
	MobileFinishedAction   = model.MobileFinishedAction
	MobileFailedAction     = model.MobileFailedAction
	TouchTapAction         = model.TouchTapAction
	TouchDragAction        = model.TouchDragAction
	TouchSwipeAction       = model.TouchSwipeAction
	TouchLongPressAction   = model.TouchLongPressAction
	AndroidBackAction      = model.AndroidBackAction
	AndroidHomeAction      = model.AndroidHomeAction
	OSStartAppAction       = model.OSStartAppAction
	OSStartAppByNameAction = model.OSStartAppByNameAction
	OSCloseAppAction       = model.OSCloseAppAction
	OSListAppsAction       = model.OSListAppsAction
)

// Action type tags.
const (
	ActionTypeScreenshot       = model.ActionTypeScreenshot
	ActionTypeWait             = model.ActionTypeWait
	ActionTypeFinished         = model.ActionTypeFinished
	ActionTypeFailed           = model.ActionTypeFailed
	ActionTypeUserTakeover     = model.ActionTypeUserTakeover
	ActionTypeMouseClick       = model.ActionTypeMouseClick
	ActionTypeMouseDoubleClick = model.ActionTypeMouseDoubleClick
	ActionTypeMouseTripleClick = model.ActionTypeMouseTripleClick
	ActionTypeMouseMove        = model.ActionTypeMouseMove
	ActionTypeMouseScroll      = model.ActionTypeMouseScroll
	ActionTypeMouseDrag        = model.ActionTypeMouseDrag
	ActionTypeKeyboardType     = model.ActionTypeKeyboardType
	ActionTypeKeyboardHotkey   = model.ActionTypeKeyboardHotkey
	ActionTypeKeyDown          = model.ActionTypeKeyDown
	ActionTypeKeyUp            = model.ActionTypeKeyUp
	ActionTypeMobileTap        = model.ActionTypeMobileTap
	ActionTypeMobileDoubleTap  = model.ActionTypeMobileDoubleTap
	ActionTypeMobileSwipe      = model.ActionTypeMobileSwipe
	ActionTypeMobileType       = model.ActionTypeMobileType
	ActionTypeMobileHotkey     = model.ActionTypeMobileHotkey
	ActionTypeMobileHome       = model.ActionTypeMobileHome
	ActionTypeMobileBack       = model.ActionTypeMobileBack
	ActionTypeMobileScreenshot = model.ActionTypeMobileScreenshot
	ActionTypeMobileWait       = model.ActionTypeMobileWait
	ActionTypeMobileFinished   = model.ActionTypeMobileFinished
	ActionTypeMobileFailed     = model.ActionTypeMobileFailed
	ActionTypeTouchTap         = model.ActionTypeTouchTap
	ActionTypeTouchDrag        = model.ActionTypeTouchDrag
	ActionTypeTouchSwipe       = model.ActionTypeTouchSwipe
	ActionTypeTouchLongPress   = model.ActionTypeTouchLongPress
	ActionTypeAndroidBack      = model.ActionTypeAndroidBack
	ActionTypeAndroidHome      = model.ActionTypeAndroidHome
	ActionTypeOSStartApp       = model.ActionTypeOSStartApp
	ActionTypeOSStartAppByName = model.ActionTypeOSStartAppByName
	ActionTypeOSCloseApp       = model.ActionTypeOSCloseApp
	ActionTypeOSListApps       = model.ActionTypeOSListApps
)

// Mouse buttons, they can be combined.
const (
	MouseButtonLeft   = model.MouseButtonLeft
	MouseButtonRight  = model.MouseButtonRight
	MouseButtonMiddle = model.MouseButtonMiddle
)

type (
	Sandbox              = model.Sandbox
	SandboxShape         = model.SandboxShape
	SandboxOS            = model.SandboxOS
	SandboxDetails       = model.SandboxDetails
	ConnectDetails       = model.ConnectDetails
	GatewayAddress       = model.GatewayAddress
	CreateSandboxRequest = model.CreateSandboxRequest
	ExtendSandboxRequest = model.ExtendSandboxRequest

	Stats                  = model.Stats
	Project                = model.Project
	CreateProjectRequest   = model.CreateProjectRequest
	McpServer              = model.McpServer
	McpServerPolicy        = model.McpServerPolicy
	CreateMcpServerRequest = model.CreateMcpServerRequest

	ExecuteActionRequest = model.ExecuteActionRequest
	ActionResult         = model.ActionResult
	CursorPosition       = model.CursorPosition
	Screenshot           = model.Screenshot
	ParseModel           = model.ParseModel
	ParsedActions        = model.ParsedActions

	FileLocation     = model.FileLocation
	FileCopyItem     = model.FileCopyItem
	FileCopyRequest  = model.FileCopyRequest
	FileCopyResult   = model.FileCopyResult
	FileCopyResponse = model.FileCopyResponse
	ProcessRequest   = model.ProcessRequest
	ProcessResult    = model.ProcessResult

	ShellSessionRequest = model.ShellSessionRequest
	ShellSession        = model.ShellSession
	ShellOutput         = model.ShellOutput
	StreamEvent         = model.StreamEvent
	StreamEventType     = model.StreamEventType

	APKSource   = model.APKSource
	GPSLocation = model.GPSLocation

	ActionScript       = model.ActionScript
	ActionRecord       = model.ActionRecord
	ActionRecordStatus = model.ActionRecordStatus
	ActionRecordFilter = model.ActionRecordFilter
)

const (
	SandboxOSWindows = model.SandboxOSWindows
	SandboxOSLinux   = model.SandboxOSLinux
	SandboxOSAndroid = model.SandboxOSAndroid

	ParseModelUITars        = model.ParseModelUITars
	ParseModelOAIComputeUse = model.ParseModelOAIComputeUse

	StreamEventStdout  = model.StreamEventStdout
	StreamEventStderr  = model.StreamEventStderr
	StreamEventWaiting = model.StreamEventWaiting
	StreamEventTimeout = model.StreamEventTimeout
	StreamEventEnd     = model.StreamEventEnd

	ActionRecordStatusDone   = model.ActionRecordStatusDone
	ActionRecordStatusFailed = model.ActionRecordStatusFailed
)

var (
	SandboxFile = model.SandboxFile
	HTTPGetFile = model.HTTPGetFile
	HTTPPutFile = model.HTTPPutFile
	LocalAPK    = model.LocalAPK
	RemoteAPK   = model.RemoteAPK
	NewCallID   = model.NewCallID
)

var (
	// IsComputerUseAction returns true if the action can be executed on a computer use sandbox.
	IsComputerUseAction = model.IsComputerUseAction
	// IsMobileUseAction returns true if the action can be executed on a mobile use sandbox.
	IsMobileUseAction = model.IsMobileUseAction
)
