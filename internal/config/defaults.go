// Package config handles todo directory configuration.
package config

const (
	// DefaultDirName is the default todo directory under $HOME.
	DefaultDirName = ".todo"
	// DefaultTodoFile is the default active file name.
	DefaultTodoFile = "todo.txt"
	// DefaultDoneFile is the default done file name.
	DefaultDoneFile = "done.txt"

	// ConfigFileName is the name of the config file within the todo directory.
	ConfigFileName = "config.yml"

	// CurrentVersion is the current config schema version.
	CurrentVersion = 2
)
