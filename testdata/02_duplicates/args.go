package duplicates

type CopyArgs struct {
	Src string `required:"0,src,Source path"`
	Dst string `required:"0,dst,Destination path"`
	Out string `optional:"-,Output,Output file"`
	Log string `optional:"-,output,Log file path"`
}
