// Package lybic provides a Go SDK for the Lybic sandbox service.
//
// It manages the sandboxes, projects and MCP servers of an organization,
// executes GUI actions on sandboxes, streams shell sessions and parses the
// text output of LLMs into structured actions.
//
// # Quick Start
//
//	client, err := lybic.New(ctx, lybic.Config{
//	    OrgID:  "ORG-xxxx",
//	    APIKey: "sk-xxxx",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	sb, err := client.CreateSandbox(ctx, lybic.CreateSandboxRequest{Shape: "beijing-2c-4g-cpu"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	res, err := client.ExecuteAction(ctx, sb.Sandbox.ID, lybic.ExecuteActionRequest{
//	    Action: &lybic.MouseClickAction{X: lybic.Px(100), Y: lybic.Frac(1, 2), Button: lybic.MouseButtonLeft},
//	})
//
// # Actions
//
// Actions are the *XxxAction types, they implement [Action]. Payloads
// received from other systems (like an LLM tool call) are decoded with
// [DecodeAction], [DecodeComputerUseAction] or [DecodeMobileUseAction], which
// reject unknown types and payloads that don't match the action schema.
// Every executed action gets a call ID when it doesn't have one, executed
// actions are recorded in a local journal that can be queried with
// [Client.ActionHistory].
//
// # Shell Sessions
//
// [Client.StreamShell] returns a [ShellStream] that yields the decoded output
// events lazily:
//
//	st, _ := client.StreamShell(ctx, sandboxID, lybic.ShellSessionRequest{Command: "ls -la"})
//	defer st.Close()
//	for {
//	    ev, err := st.Recv()
//	    if errors.Is(err, io.EOF) {
//	        break
//	    }
//	    fmt.Print(ev.Data)
//	}
//
// # Error Handling
//
// All methods return errors that can be inspected with [errors.Is]:
//
//   - [ErrNotFound]: Resource does not exist.
//   - [ErrAlreadyExists]: Resource already exists.
//   - [ErrNotValid]: Invalid input or rejected request.
//   - [ErrUnknownActionType]: Missing action type or not accepted by the sandbox kind.
//   - [ErrInvalidActionPayload]: Action payload does not match its type.
//   - [ErrUnsupportedOperation]: Operation not available on the sandbox platform.
//
// API failures can be inspected with [errors.As] on [*APIError],
// [*InternalError] and [*NetworkError].
//
// # Thread Safety
//
// A [Client] is safe for concurrent use from multiple goroutines. A
// [GUIController] serializes its calls.
package lybic
