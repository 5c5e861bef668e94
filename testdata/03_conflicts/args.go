package conflicts

type Phase string

const (
	Build Phase = "build"
	Test  Phase = "test"
)

type RunArgs struct {
	Stage  Phase  `action:""`
	Target string `required:"0,target,Build target" optional:"all,target,Build target"`
	Scope  string `group:"Build"`
	Other  Phase  `action:""`
}
