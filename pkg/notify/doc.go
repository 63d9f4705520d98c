// Package notify renders user-facing CLI messages with consistent symbols
// and colors.
//
// Key functionality:
//   - WriteMessage: render a typed message (error, warning, activity,
//     generate, success, info, title) to a writer.
//   - Errorf, Warningf, Activityf, Generatef, Successf, SuccessWithTimerf,
//     Infof, Titlef: convenience wrappers around WriteMessage.
//   - StageWriter: inserts blank lines between emoji-titled CLI stages.
package notify
