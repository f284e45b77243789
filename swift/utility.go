package swift

func serviceCall(w *Writer) {
	w.Text(`
/**
 Wrapper over service method. Might be called synchronously or asynchronously.

 @ignore
 */
class ServiceCall<Payload> {

    /**
     Signature for closure, which wraps service method logic.
     */
    typealias Main = () -> ServiceCallResult<Payload>

    /**
     Completion callback signature.
     */
    typealias Callback = (_ result: ServiceCallResult<Payload>) -> ()

    /**
     Signature for closure to handle payload in background before callback.
     */
    typealias PostProcess = (_ payload: Payload) -> ()

    /**
     Closure, which wraps service method logic.
     */
    let main: Main

    /**
     Background queue, where wrapped service logic will be performed.
     */
    let operationQueue: OperationQueue

    /**
     Completion callback queue.
     */
    let callbackQueue: OperationQueue

    /**
     Result.
     */
    var result: ServiceCallResult<Payload>?

    var postprocess: PostProcess?

    /**
     Initializer.

     - Parameters:
         - operationQueue: background queue, where wrapped service logic will be performed
         - callbackQueue: completion callback queue
         - main: closure, which wraps service method logic.
     */
    init(
        operationQueue: OperationQueue,
        callbackQueue: OperationQueue,
        main: @escaping Main
    ) {
        self.operationQueue = operationQueue
        self.callbackQueue  = callbackQueue
        self.main           = main
    }

    /**
     Run synchronously.
     */
    func invoke() -> ServiceCallResult<Payload> {
        let result: ServiceCallResult<Payload> = self.main()
        self.result = result
        self.postprocess(result: result)
        return result
    }

    /**
     Run in background.

     - seealso: ServiceCall.operationQueue
     */
    func operate(completion: @escaping Callback) {
        self.operationQueue.addOperation {
            let result: ServiceCallResult<Payload> = self.main()
            self.result = result
            self.postprocess(result: result)
            self.callbackQueue.addOperation {
                completion(result)
            }
        }
    }

    /**
     Handle payload before completion callback.
     */
    func postprocess(process: @escaping PostProcess) -> Self {
        self.postprocess = process
        return self
    }

    func postprocess(result: ServiceCallResult<Payload>) {
        if case ServiceCallResult.success(let payload) = result { self.postprocess?(payload) }
    }

}

/**
 Result, returned by ServiceCall.

 - seealso: ServiceCall
 */
enum ServiceCallResult<Payload> {
    case success(payload: Payload)
    case failure(error: NSError)
}
`)
}

func authorizedServiceCall(w *Writer) {
	w.Text(`
/**
 Fail-safe ServiceCall for cases, when the call might need to be authorized.

 A call failing with an authorization error is re-authorized and retried
 once. A retried call that fails again finishes with its own result.

 @ignore
 */
class AuthorizedServiceCall<Payload>: ServiceCall<Payload> {

    /**
     Entity to authorize the call or to check, whether the call failure was because of auth error.
     */
    let authorizer: Authorizing

    /**
     Initializer.

     - Parameters:
         - operationQueue: background queue, where wrapped service logic will be performed
         - callbackQueue: completion callback queue
         - authorizer: Entity to authorize the call or to check, whether the call failure was because of auth error
         - main: closure, which wraps service method logic.
     */
    init(
        operationQueue: OperationQueue,
        callbackQueue: OperationQueue,
        authorizer: Authorizing,
        main: @escaping Main
    ) {
        self.authorizer = authorizer
        super.init(operationQueue: operationQueue, callbackQueue: callbackQueue, main: main)
    }

    /**
     Run authorized call synchronously.

     If call fails because session is outdated, try to re-authorize, then call again.
     */
    override func invoke() -> ServiceCallResult<Payload> {
        return self.invoke(retried: false)
    }

    /**
     Run authorized call in background.

     If call fails because session is outdated, try to re-authorize, then call again.
     */
    override func operate(completion: @escaping Callback) {
        self.operate(retried: false, completion: completion)
    }

    private func invoke(retried: Bool) -> ServiceCallResult<Payload> {
        let result: ServiceCallResult<Payload> = self.main()
        if !retried,
            case ServiceCallResult<Payload>.failure(let error) = result,
            self.authorizer.detectAuthError(error: error) {
            let authResult: ServiceCallResult<Void> = self.authorizer.authorize().invoke()
            if case ServiceCallResult<Void>.failure(let authError) = authResult {
                // auth failure, finishing
                let failure = ServiceCallResult<Payload>.failure(error: authError)
                self.result = failure
                return failure
            }
            // auth success, re-trying initial invocation once
            return self.invoke(retried: true)
        }
        self.result = result
        self.postprocess(result: result)
        return result
    }

    private func operate(retried: Bool, completion: @escaping Callback) {
        self.operationQueue.addOperation {
            let result: ServiceCallResult<Payload> = self.main()
            if !retried,
                case ServiceCallResult<Payload>.failure(let error) = result,
                self.authorizer.detectAuthError(error: error) {
                self.authorizer.authorize().operate { (authResult: ServiceCallResult<Void>) in
                    if case ServiceCallResult<Void>.failure(let authError) = authResult {
                        // auth failure, finishing
                        let failure = ServiceCallResult<Payload>.failure(error: authError)
                        self.result = failure
                        self.callbackQueue.addOperation {
                            completion(failure)
                        }
                    } else {
                        // auth success, re-trying initial invocation once
                        self.operate(retried: true, completion: completion)
                    }
                }
                return
            }
            self.result = result
            self.postprocess(result: result)
            self.callbackQueue.addOperation {
                completion(result)
            }
        }
    }

}

/**
 Entity to authorize the call or to check, whether the call failure was because of auth error.
 */
protocol Authorizing {

    /**
     Decide, whether ServiceCall failure was because of authorization error.
     */
    func detectAuthError(error: NSError) -> Bool

    /**
     Authorize call.
     */
    func authorize() -> ServiceCall<Void>
}
`)
}

func serviceDependency(w *Writer) {
	w.Text(`
/**
 Working & completion queues, base URL, security preferences and request retrier.
 */
class ServiceDependency {

    /**
     Background working queue.
     */
    let operationQueue:       OperationQueue

    /**
     Main queue for callbacks.
     */
    let completionQueue:      OperationQueue

    /**
     API session.
     */
    let session:              Session

    /**
     Validate via Alamofire.
     */
    let useDefaultValidation: Bool

    /**
     Initializer.
     */
    init(
        operationQueue:       OperationQueue        = OperationQueue(),
        completionQueue:      OperationQueue        = OperationQueue.main,
        security:             Security              = Security.noEvaluation,
        retrier:              HTTPTransportRetrier? = nil,
        useDefaultValidation: Bool                  = true
    ) {
        self.operationQueue = operationQueue
        self.completionQueue = completionQueue
        self.session = Session(security: security, retrier: retrier)
        self.useDefaultValidation = useDefaultValidation
    }

    /**
     Initializer.

     Shared API session might be applied.
     */
    init(
        operationQueue:       OperationQueue        = OperationQueue(),
        completionQueue:      OperationQueue        = OperationQueue.main,
        session:              Session,
        useDefaultValidation: Bool                  = true
    ) {
        self.operationQueue = operationQueue
        self.completionQueue = completionQueue
        self.session = session
        self.useDefaultValidation = useDefaultValidation
    }

}
`)
}

func serviceLogFilter(w *Writer) {
	w.Text(`
/**
 HTTP requests' log filtering.
 */
class ServiceLogFilter {

    /**
     Requests' log level.
     */
    var requestLogLevel:            LogRequestInterceptor.LogLevel

    /**
     Responses' log level.
     */
    var responseLogLevel:           LogResponseInterceptor.LogLevel

    /**
     Enable filtering log of received headers.
     */
    var isFilteringResponseHeaders: Bool

    /**
     Filter for log of received headers.
     */
    var responseHeaderFilter:       [LogResponseInterceptor.Header]

    /**
     Initializer.
     */
    init(
        requestLogLevel:            LogRequestInterceptor.LogLevel  = .url,
        responseLogLevel:           LogResponseInterceptor.LogLevel = .status,
        isFilteringResponseHeaders: Bool                            = true,
        responseHeaderFilter:       [LogResponseInterceptor.Header] = [.contentType, .setCookie, .lastModified]
    ) {
        self.requestLogLevel = requestLogLevel
        self.responseLogLevel = responseLogLevel
        self.isFilteringResponseHeaders = isFilteringResponseHeaders
        self.responseHeaderFilter = responseHeaderFilter
    }

}
`)
}
