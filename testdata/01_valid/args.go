package valid

type Mode int

const (
	Start Mode = iota
	Stop
)

type ServeArgs struct {
	Command Mode   `action:""`
	Path    string `required:"0,path,Path to serve" group:"Start"`
	Verbose bool   `optional:"false,verbose,Verbose output" common:""`
}
